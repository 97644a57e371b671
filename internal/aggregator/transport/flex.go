package transport

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// FlexInt handles JSON values that can be either string or number.
type FlexInt int

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = 0
		return nil
	}
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*f = FlexInt(num)
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		str = strings.TrimSpace(str)
		if str == "" {
			*f = 0
			return nil
		}
		parsed, err := strconv.Atoi(str)
		if err != nil {
			return err
		}
		*f = FlexInt(parsed)
		return nil
	}
	return fmt.Errorf("cannot unmarshal %s into FlexInt", string(data))
}

// FlexList handles JSON values that can be a comma separated string or an
// array of strings. Entries are trimmed and empty entries dropped.
type FlexList []string

func (f *FlexList) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = nil
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*f = compact(list)
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*f = SplitList(str)
		return nil
	}
	return fmt.Errorf("cannot unmarshal %s into FlexList", string(data))
}

// SplitList splits a comma separated string into trimmed, non-empty parts.
func SplitList(value string) []string {
	return compact(strings.Split(value, ","))
}

func compact(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
