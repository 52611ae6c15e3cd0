package renderer

// ConfigRow is a configuration key as displayed.
type ConfigRow struct {
	Key, Value, Description string
}

// Config lists configuration keys and their values.
func Config(rows []ConfigRow) string {
	d := newDocument()
	cells := make([][]string, len(rows))
	for i, r := range rows {
		cells[i] = []string{r.Key, orDash(r.Value), r.Description}
	}
	d.table("No configuration.", []string{"Config", "Value", "Description"}, cells, align(3))
	return d.String()
}
