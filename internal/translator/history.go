package translator

// helpers over the local history list; callers hold the controller lock

func prependEntry(list []Entry, entry Entry) []Entry {
	out := make([]Entry, 0, len(list)+1)
	out = append(out, entry)
	return append(out, list...)
}

// drops the entry with the given id and nothing else
func removeEntry(list []Entry, id string) []Entry {
	out := make([]Entry, 0, len(list))

	for _, entry := range list {
		if entry.ID != id {
			out = append(out, entry)
		}
	}

	return out
}

func copyEntries(list []Entry) []Entry {
	if list == nil {
		return nil
	}

	out := make([]Entry, len(list))
	copy(out, list)
	return out
}
