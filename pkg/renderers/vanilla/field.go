package vanilla

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-contentkit/pkg/node"
	"github.com/goliatone/go-contentkit/pkg/render"
)

var fieldTypes = map[string]struct{}{
	"text": {}, "email": {}, "password": {}, "number": {}, "tel": {}, "url": {},
	"date": {}, "hidden": {}, "search": {}, "textarea": {}, "select": {}, "checkbox": {},
}

// Field renders a labelled form control through the field template. Props:
// type, name, label, required, placeholder, options, value, checked, classes.
func (c *Components) Field(_ context.Context, args render.Args) (render.Output, error) {
	if c.templates == nil {
		return render.Output{}, fmt.Errorf("vanilla: template renderer is nil")
	}
	fieldType := strings.ToLower(args.Args.String("type"))
	if _, ok := fieldTypes[fieldType]; !ok {
		fieldType = "text"
	}
	name := args.Args.String("name")

	markup, err := c.templates.RenderTemplate("field", map[string]any{
		"id":          controlID(name),
		"type":        fieldType,
		"name":        name,
		"label":       args.Args.String("label"),
		"required":    args.Args.Bool("required"),
		"checked":     args.Args.Bool("checked"),
		"placeholder": args.Args.String("placeholder"),
		"value":       args.Args.String("value"),
		"classes":     args.Args.String("classes"),
		"options":     fieldOptions(args.Args["options"]),
	})
	if err != nil {
		return render.Output{}, fmt.Errorf("vanilla: render field %q: %w", name, err)
	}
	return render.Markup(markup), nil
}

// fieldOptions accepts a list of strings or {value, label} objects.
func fieldOptions(value any) []map[string]any {
	list, ok := value.([]any)
	if !ok {
		return nil
	}
	out := make([]map[string]any, 0, len(list))
	for _, entry := range list {
		switch v := entry.(type) {
		case string:
			out = append(out, map[string]any{"value": v, "label": v})
		case map[string]any:
			props := node.Props(v)
			optionValue := props.String("value")
			label := props.String("label")
			if label == "" {
				label = optionValue
			}
			out = append(out, map[string]any{"value": optionValue, "label": label})
		}
	}
	return out
}
