// Package tool defines the Tool interface and a builder for constructing
// schema-validated graph tools.
//
// A Tool is an executable unit with a name, version, tags, and JSON schemas
// describing its input and output. The builder validates inputs before the
// tool's logic runs and outputs after it returns, so individual tools only
// implement their domain behavior.
//
// # Building a Tool
//
//	t, err := tool.New(tool.NewConfig().
//		SetName("inspect-graph").
//		SetDescription("Report node and edge counts for a namespace").
//		SetTags([]string{"graph", "read"}).
//		SetInputSchema(schema.Object(map[string]schema.JSON{
//			"namespace": schema.String(),
//		})).
//		SetExecuteFunc(func(ctx context.Context, input map[string]any) (map[string]any, error) {
//			// ...
//			return map[string]any{"success": true}, nil
//		}))
//
// Tools report operational status via Health; tools built without a custom
// health check always report healthy.
package tool
