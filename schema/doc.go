// Package schema declares and validates the JSON contracts of graph tools.
//
// Every tool publishes an input and an output schema built from this
// package. The worker validates work item payloads before executing a tool,
// and the builder validates tool results before they are published, so a
// malformed payload is rejected at the boundary instead of failing somewhere
// inside the graph engine.
//
// # Building schemas
//
// Constructors cover the common shapes:
//
//	docSchema := schema.Object(map[string]schema.JSON{
//		"content":  schema.StringWithDesc("Document text"),
//		"metadata": schema.Object(nil),
//	}, "content")
//
//	createInput := schema.Object(map[string]schema.JSON{
//		"namespace":           schema.String(),
//		"documents":           schema.Array(docSchema),
//		"similarityThreshold": schema.Number(),
//	}, "documents")
//
// Constraints are set on the JSON struct directly:
//
//	zero, one := 0.0, 1.0
//	weight := schema.JSON{Type: "number", Minimum: &zero, Maximum: &one}
//
// Closed value sets use Enum:
//
//	format := schema.Enum("json", "csv", "graphml")
//
// # Validating
//
//	if err := createInput.Validate(payload); err != nil {
//	    // err names the first offending field, e.g.
//	    // "property documents: item 2: required field content is missing"
//	}
//
// Validation is permissive about numbers because payloads arrive as decoded
// JSON: an integer schema accepts 3.0, and object fields not named in
// Properties pass through unvalidated.
//
// Schemas can also be derived from Go structs with FromType instead of being
// written by hand; see generate.go.
package schema
