package convert

import (
	"strings"

	"github.com/cxcsds/ahelpgen/internal/ahelp"
	"github.com/cxcsds/ahelpgen/internal/errors"
	"github.com/cxcsds/ahelpgen/internal/logfields"
)

// buildParams renders the parameter (or, for objects, attribute) section
// from a parsed field list: an intro paragraph, a table of names and
// definitions, and the return value when one is documented. Returns nil when
// there is nothing worth a section (a raises-only field list, say).
func (c *converter) buildParams(fi *fieldInfo) (*ahelp.Adesc, error) {
	if fi == nil {
		return nil, nil
	}

	isAttrs := false
	for _, p := range fi.Params {
		if p.IVar != nil {
			isAttrs = true
			break
		}
	}

	if len(fi.Params) == 0 && len(fi.Returns) == 0 {
		if fi.Raises == 0 {
			return nil, errors.Structure("field list with no usable fields")
		}
		return nil, nil
	}

	funcname, value := "function", "parameter"
	if isAttrs {
		funcname, value = "object", "attribute"
	}

	returnValue, err := c.returnValuePara(fi)
	if err != nil {
		return nil, err
	}

	if len(fi.Params) == 0 && returnValue == nil {
		c.log.Info("no parameters or return value",
			logfields.Symbol(c.name), logfields.Section("params"))
		return nil, nil
	}

	out := &ahelp.Adesc{Title: strings.ToUpper(value) + "S"}

	intro := &ahelp.Para{}
	switch len(fi.Params) {
	case 0:
		intro.Text = "This " + funcname + " has no " + value + "s"
	case 1:
		intro.Text = "The " + value + " for this " + funcname + " is:"
	default:
		intro.Text = "The " + value + "s for this " + funcname + " are:"
	}
	out.Append(intro)

	if len(fi.Params) > 0 {
		tbl, err := c.paramTable(fi, value)
		if err != nil {
			return nil, err
		}
		out.Append(tbl)
	}

	if returnValue != nil {
		out.Append(&ahelp.Para{
			Title: "Return value",
			Text:  "The return value from this function is:",
		})
		out.Append(returnValue)
	}
	return out, nil
}

// returnValuePara renders the documented return value, or nil when the
// docs carry nothing beyond the return value's name.
func (c *converter) returnValuePara(fi *fieldInfo) (*ahelp.Para, error) {
	var bodies []*returnField
	for i := range fi.Returns {
		if fi.Returns[i].Kind == "returns" {
			bodies = append(bodies, &fi.Returns[i])
		}
	}
	if len(bodies) > 1 {
		return nil, errors.Structuref("%d returns fields", len(bodies))
	}
	if len(bodies) == 0 {
		return nil, nil
	}

	body := bodies[0].Body
	if len(body.Blocks) == 0 {
		return nil, nil
	}
	txt, err := c.renderBlockText(body.Blocks[0])
	if err != nil {
		return nil, err
	}
	if len(strings.Fields(strings.TrimSpace(txt))) == 1 {
		return nil, nil
	}
	return c.convertFieldBody(body)
}

// paramTable builds the name/definition table, with a type column when any
// parameter carries type information.
func (c *converter) paramTable(fi *fieldInfo, value string) (*ahelp.Table, error) {
	hasType := false
	for _, p := range fi.Params {
		if p.Type != nil {
			hasType = true
			break
		}
	}

	header := []string{capitalize(value)}
	if hasType {
		header = append(header, "Type information")
	}
	header = append(header, "Definition")
	tbl := &ahelp.Table{Rows: [][]string{header}}

	for _, p := range fi.Params {
		row := []string{p.Name}

		if hasType {
			txt := ""
			if p.Type != nil {
				conv, err := c.convertFieldBody(p.Type)
				if err != nil {
					return nil, err
				}
				txt = conv.Text
			}
			row = append(row, txt)
		}

		desc := ""
		body := p.Param
		if body == nil {
			body = p.IVar
		}
		if body != nil {
			conv, err := c.convertFieldBody(body)
			if err != nil {
				return nil, err
			}
			desc = conv.Text
		}
		row = append(row, desc)

		tbl.Rows = append(tbl.Rows, row)
	}
	return tbl, nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
