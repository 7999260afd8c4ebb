// Package convert turns source files into Markdown documents.
//
// An [Engine] routes each file through the highest priority [Converter]
// claiming its MIME type, detected from the file extension with a content
// sniff as fallback. Two converters ship with the package:
//
//   - [TextConverter] — plain text, Markdown (with YAML front matter
//     extraction), CSV, JSON, XML, and log files
//   - [HTMLConverter] — HTML documents, with head metadata harvesting and
//     boilerplate stripping
//
// Register additional converters on the engine's [Registry]. Conversion
// results carry the produced Markdown plus document metadata, warnings,
// and timing:
//
//	engine := convert.NewEngine()
//	res, err := engine.Convert(ctx, "report.csv", convert.DefaultOptions())
//
// Rendering style is controlled by [Options], which map onto the markit
// configuration shared by every converter.
package convert
