package otc

// The provider wraps response bodies inconsistently: a list endpoint may
// return a bare array, a single resource may arrive as a bare object, and
// either may be nested under a "data" key. The two normalizers below collapse
// all observed shapes into one canonical form per call type. They are pure
// and never fail: an unrecognized shape degrades to an empty result, leaving
// the HTTP status as the only signal of what actually happened.

// Records normalizes a decoded list response body.
func Records(body interface{}) []Record {
	if records, ok := asRecordList(body); ok {
		return records
	}

	if wrapped, ok := asDataWrapper(body); ok {
		if records, ok := asRecordList(wrapped); ok {
			return records
		}
	}

	return []Record{}
}

// SingleRecord normalizes a decoded single-resource response body. An object
// carrying an "id" key is taken to be the resource itself; otherwise a
// "data"-wrapped object is unwrapped.
func SingleRecord(body interface{}) Record {
	if record, ok := asIDRecord(body); ok {
		return record
	}

	if wrapped, ok := asDataWrapper(body); ok {
		if record, ok := wrapped.(map[string]interface{}); ok {
			return Record(record)
		}
	}

	return Record{}
}

func asRecordList(body interface{}) ([]Record, bool) {
	items, ok := body.([]interface{})
	if !ok {
		return nil, false
	}

	records := make([]Record, 0, len(items))

	for _, item := range items {
		if record, ok := item.(map[string]interface{}); ok {
			records = append(records, Record(record))
		}
	}

	return records, true
}

func asIDRecord(body interface{}) (Record, bool) {
	record, ok := body.(map[string]interface{})
	if !ok {
		return nil, false
	}

	if _, ok := record["id"]; !ok {
		return nil, false
	}

	return Record(record), true
}

func asDataWrapper(body interface{}) (interface{}, bool) {
	record, ok := body.(map[string]interface{})
	if !ok {
		return nil, false
	}

	data, ok := record["data"]

	return data, ok
}
