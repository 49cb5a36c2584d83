// Package cli provides the configuration, output and terminal rendering
// helpers shared by the devotional command.
//
// Credentials live in ~/.devotional/config.yaml as named contexts, similar
// to kubectl. The selected context doubles as the credential gate for
// content requests:
//
//	cfg, err := cli.LoadConfig("")
//	gate := cli.ContextGate{Config: cfg}
//
//	cli.Output(study, cli.OutputOptions{
//	    Format: cli.FormatJSON,
//	    Query:  ".reference",
//	})
package cli
