// Package definitions loads user-defined actions from TOML or YAML files
// and adds them to a format's registry.
//
// A definitions file is a list of actions, each with a name, a kind and
// the settings of that kind:
//
//	[[action]]
//	name = "shout"
//	kind = "pattern"
//	template = "$1!"
//
//	[[action]]
//	name = "quote"
//	kind = "delimiter"
//	start = "\""
//	end = "\""
//	arg_start = [""]
//	arg_end = [""]
//
// The YAML form uses the same keys under a top-level "action" list.
// Definitions override actions of the same name in the base registry. A
// "remove" definition drops the named action, which then renders as an
// unknown command.
package definitions
