package contract

import "github.com/phelan/cairn/internal/model"

// CheckUsage builds the contract index from specDir, extracts every
// outbound call site under root, and validates each call against the
// index. An unmatched call yields exactly one unknown-endpoint violation
// and nothing else; a matched call can independently yield missing-body
// and missing-query-params.
//
// The query-parameter check is deliberately coarse: it only verifies that
// some parameter-passing mechanism was used at the call site, not which
// required names were supplied.
func CheckUsage(root, specDir string) ([]model.Violation, error) {
	ix := LoadSpecs(specDir)
	calls, err := ExtractCalls(root)
	if err != nil {
		return nil, err
	}

	var violations []model.Violation
	for _, c := range calls {
		op, ok := ix.Match(c.Method, c.Path)
		if !ok {
			violations = append(violations, model.Violation{
				Kind:   model.UnknownEndpoint,
				File:   c.File,
				Line:   c.Line,
				Method: c.Method,
				Path:   c.Path,
			})
			continue
		}

		if op.BodyRequired && !c.HasBody {
			violations = append(violations, model.Violation{
				Kind:   model.MissingBody,
				File:   c.File,
				Line:   c.Line,
				Method: c.Method,
				Path:   c.Path,
			})
		}

		if len(op.QueryRequired) > 0 && !c.HasParams {
			violations = append(violations, model.Violation{
				Kind:     model.MissingQueryParams,
				File:     c.File,
				Line:     c.Line,
				Method:   c.Method,
				Path:     c.Path,
				Required: op.QueryRequired,
			})
		}
	}

	return violations, nil
}
