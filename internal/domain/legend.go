package domain

import "strconv"

// LegendTitle heads the static color key.
const LegendTitle = "Magnitude"

// LegendGrades are the lower bounds of the magnitude ranges shown in the legend.
var LegendGrades = []float64{1.0, 2.5, 4.0, 5.5, 8.0}

// LegendEntry is one row of the static color key.
type LegendEntry struct {
	Grade float64 `json:"grade"`
	Label string  `json:"label"`
	Color string  `json:"color"`
}

// Legend builds one entry per grade. Entries are colored with
// ColorForDepth(grade+1), as the map has always done, so the swatches follow
// the depth palette rather than magnitude.
func Legend() []LegendEntry {
	entries := make([]LegendEntry, 0, len(LegendGrades))
	for i, g := range LegendGrades {
		label := formatGrade(g) + "+"
		if i+1 < len(LegendGrades) {
			label = formatGrade(g) + "–" + formatGrade(LegendGrades[i+1])
		}
		entries = append(entries, LegendEntry{
			Grade: g,
			Label: label,
			Color: ColorForDepth(g + 1),
		})
	}
	return entries
}

func formatGrade(g float64) string {
	return strconv.FormatFloat(g, 'f', -1, 64)
}
