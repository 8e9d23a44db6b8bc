package codec

import "encoding/json"

// JSON is the standard-library codec. It produces the same bytes as GoJSON
// and exists so catalogs can be read without the faster encoder.
type JSON struct{}

// Marshal encodes v.
func (JSON) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

// Unmarshal decodes data into v.
func (JSON) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

// Name returns "json".
func (JSON) Name() string { return "json" }

// Default is the codec used for newly written catalogs.
var Default Codec = GoJSON{}
