package tableskema

// Package tableskema provides:
//
// - Schema descriptors for tabular data with typed fields (Descriptor/FieldDescriptor)
// - Casting of loosely typed row values into native Go values (CastValue/CastRow)
// - A stable error model via Issues (kind, code, field, row)
// - Field and schema inference from sampled values (InferType/InferSchema)
//
// Design policy:
// - Keep only public APIs in the root package; put helpers under internal/.
// - Place descriptor loading under loader/, CSV access under csv/, SQL export
//   under ddl/, and the CLI under cmd/tableskema.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//  s, err := tableskema.New("schema.json")
//  row, err := s.CastRow(tableskema.Row{"id": "42", "name": "anyone"})
//
//  iss := s.ValidateRow(raw)
//  fd := tableskema.InferDescriptor("2024-06-15")
//
