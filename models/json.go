package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Document-shaped fields (option lists, question lists, answer maps) are
// stored as JSON text columns. These helpers back the Valuer/Scanner
// implementations on the concrete column types.

func jsonValue(v interface{}) (driver.Value, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func jsonScan(dest interface{}, src interface{}) error {
	if src == nil {
		return nil
	}
	switch data := src.(type) {
	case []byte:
		return json.Unmarshal(data, dest)
	case string:
		return json.Unmarshal([]byte(data), dest)
	default:
		return fmt.Errorf("unsupported column type %T", src)
	}
}
