// Package validator evaluates rule descriptions against field values.
//
// A Description is either a single Rule (object shaped) or an ordered
// rule list (array shaped). The form core treats descriptions as opaque
// apart from the required flag, which it toggles through WithRequired.
//
// Rule failures are data, not errors: Validate returns ordered Results
// classified as error, warning or success. The returned error reports
// engine problems only - an invalid regular expression, an unregistered
// format name, or a script that failed to run.
//
// # Built-in checks
//
// Required, Whitespace, Pattern, Min/Max, MinLength/MaxLength/Len,
// Enum and Format. Empty optional values skip every check except
// Required.
//
// # Script rules
//
// A rule may carry a Lua expression that receives the value under test
// as the global "value":
//
//	Rule{Script: `if #value < 3 then return "too short" end`}
//
// Scripts run in a stripped environment (no file, OS or module access)
// and are serialized because the Lua state is not goroutine-safe.
//
// # Custom functions
//
// Rule.Func plugs arbitrary Go validation in and may return typed
// results, including warnings and successes.
package validator
