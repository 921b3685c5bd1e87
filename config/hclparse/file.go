package hclparse

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
)

// File represents a parsed graph definition file.
type File struct {
	*Parser
	*hcl.File
	ConfigPath string
}

// Decode decodes the file body into out, evaluating expressions in evalContext.
func (file *File) Decode(out any, evalContext *hcl.EvalContext) error {
	diags := gohcl.DecodeBody(file.Body, evalContext, out)

	return file.HandleDiagnostics(diags)
}

// HandleDiagnostics passes diags through the parser's diagnostics handling.
func (file *File) HandleDiagnostics(diags hcl.Diagnostics) error {
	return file.handleDiagnostics(diags)
}
