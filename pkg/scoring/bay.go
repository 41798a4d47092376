package scoring

// stablingAccessScore rewards an available home bay; this dimension is
// also folded into the bay-assignment bonus the model builder computes
// directly from bay accessibility and depot compatibility.
func stablingAccessScore(homeBayFree bool) float64 {
	if homeBayFree {
		return 5
	}
	return 2
}
