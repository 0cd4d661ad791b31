package scrape

// partition splits ids into n contiguous shards whose sizes differ by at
// most one, the first len(ids)%n shards carrying the extra element. The
// concatenation of the shards in order reproduces ids exactly. Shards may
// be empty when n exceeds len(ids).
func partition(ids []string, n int) [][]string {
	shards := make([][]string, n)
	size := len(ids) / n
	extra := len(ids) % n

	start := 0
	for i := range shards {
		end := start + size
		if i < extra {
			end++
		}
		shards[i] = ids[start:end]
		start = end
	}
	return shards
}
