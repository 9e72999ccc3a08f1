package expander

import "strconv"

// expandParameter mirrors expand_params_in_string's dispatch between the
// four special one-character sigils ($?, $$, $!, $-) and a plain
// environment-variable lookup, per expand_special_one. An unset or unknown
// variable expands to the empty string, matching shell_state_getenv's
// not-found behavior; it is not an error.
func expandParameter(name string, env Environment) string {
	if len(name) == 1 {
		switch name[0] {
		case '?':
			return strconv.Itoa(env.LastExitStatus())
		case '$':
			return strconv.Itoa(env.PID())
		case '!':
			if pid := env.LastBackgroundPID(); pid != 0 {
				return strconv.Itoa(pid)
			}
			return ""
		case '-':
			return env.OptionFlags()
		}
	}
	val, _ := env.Getenv(name)
	return val
}
