package api

import "encoding/json"

// Codec marshals plain Go structs as JSON. It registers under the "json"
// name, replacing Connect's protojson codec, so both the Connect protocol
// (application/json) and gRPC-JSON clients can reach the service.
type Codec struct{}

// Name implements connect.Codec.
func (Codec) Name() string { return "json" }

// Marshal implements connect.Codec.
func (Codec) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

// Unmarshal implements connect.Codec.
func (Codec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }
