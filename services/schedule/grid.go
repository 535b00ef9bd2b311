package schedule

// OperatingHours defines the bookable window of a field: hour marks
// from Open (inclusive) to Close (exclusive), one-hour granularity.
type OperatingHours struct {
	Open  int
	Close int
}

// BuildGrid derives the ordered, stable sequence of bookable hour marks
// for the operating hours. This sequence is the universe every other
// computation reasons over; an empty or inverted configuration yields
// zero slots, which downstream code reports as "no availability".
func BuildGrid(hours OperatingHours) []int {
	if hours.Close <= hours.Open {
		return nil
	}
	grid := make([]int, 0, hours.Close-hours.Open)
	for h := hours.Open; h < hours.Close; h++ {
		grid = append(grid, h)
	}
	return grid
}
