// Package chunk splits ordered sequences into bounded groups for DynamoDB
// batch calls.
package chunk

// Slices splits items into groups of at most size elements, preserving input
// order. For N items it yields exactly ceil(N/size) groups; the groups are
// subslices of the input, not copies. A nil or empty input yields nil, as
// does a non-positive size.
func Slices[T any](items []T, size int) [][]T {
	if size < 1 || len(items) == 0 {
		return nil
	}
	groups := make([][]T, 0, (len(items)+size-1)/size)
	for i := 0; i < len(items); i += size {
		end := min(i+size, len(items))
		groups = append(groups, items[i:end:end])
	}
	return groups
}
