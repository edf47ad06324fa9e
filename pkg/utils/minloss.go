package utils

// MinLoss finds the smallest positive loss from buying at one price and
// selling at a strictly later, lower price. It returns 0 and false when no
// losing buy/sell pair exists. Brute force over all pairs.
func MinLoss(prices []int64) (int64, bool) {
	var best int64
	found := false

	for i := 0; i < len(prices); i++ {
		for j := i + 1; j < len(prices); j++ {
			loss := prices[i] - prices[j]
			if loss <= 0 {
				continue
			}
			if !found || loss < best {
				best = loss
				found = true
			}
		}
	}

	return best, found
}
