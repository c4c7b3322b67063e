package util

import (
	"encoding/json"
	"strconv"
)

// Decodes a string to an int, 0 on failure
func StringToInt(str string) int {
	atoi, err := strconv.Atoi(str)
	if err != nil {
		return 0
	}
	return atoi
}

func IsNilOrEmpty(s *string) bool {
	return s == nil || *s == ""
}

func DeepCopy(src, dest interface{}) error {
	data, err := json.Marshal(src)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}
