package shaders

import "strings"

// DefinesMarker is the line in a shader template that is replaced with the defines
const DefinesMarker = "//#defines"

// InjectDefines places definesText in src. It replaces the first line that is exactly DefinesMarker,
// otherwise goes right after the '#version' line (which must stay first), otherwise is prepended.
func InjectDefines(src, definesText string) string {

	definesText = strings.TrimSuffix(definesText, "\n")

	lines := strings.Split(src, "\n")
	versionLine := -1
	for i, line := range lines {

		trimmed := strings.TrimSpace(line)
		if trimmed == DefinesMarker {
			lines[i] = definesText
			return strings.Join(lines, "\n")
		}

		if versionLine == -1 && strings.HasPrefix(trimmed, "#version") {
			versionLine = i
		}
	}

	if definesText == "" {
		return src
	}

	if versionLine == -1 {
		return definesText + "\n" + src
	}

	out := make([]string, 0, len(lines)+1)
	out = append(out, lines[:versionLine+1]...)
	out = append(out, definesText)
	out = append(out, lines[versionLine+1:]...)
	return strings.Join(out, "\n")
}
