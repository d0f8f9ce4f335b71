package view

// person builds a {name, age} record.
func person(name string, age int) Record {
	return NewRecord(Field{Key: "name", Value: name}, Field{Key: "age", Value: age})
}

// names extracts the "name" field of each record.
func names(rs []Record) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i], _ = r.Value("name").(string)
	}
	return out
}

// rowNames extracts the "name" field of each row.
func rowNames(rows []Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i], _ = r.Record.Value("name").(string)
	}
	return out
}

func roundTripRecords() []Record {
	return []Record{person("Bob", 40), person("Ann", 25), person("Cy", 25)}
}
