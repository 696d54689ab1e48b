// Package serial provides an ordered name/value store implementing the
// derive.Sink and derive.Source interfaces, with JSON and YAML encodings.
//
//	extract, _ := derive.Extract[Point]()
//	info := serial.New()
//	if err := extract(p, info); err != nil { ... }
//	data, err := serial.MarshalYAML(info)
//
// Decoded documents keep their values in generic form. Conversion to field
// types happens when derive.Inject reads them back.
package serial
