package glctxtest

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// compiledUnit is what a successfully compiled stage exposes to the linker
type compiledUnit struct {
	hasMain  bool
	uniforms []uniformDecl
	blocks   []blockDecl
	ins      []string
	outs     []string
}

type uniformDecl struct {
	Type      string
	Name      string
	ArraySize int
	active    bool
}

type blockDecl struct {
	Name   string
	active bool
}

var (
	identRegex   = regexp.MustCompile(`[A-Za-z_]\w*`)
	mainRegex    = regexp.MustCompile(`\bvoid\s+main\s*\(\s*(void)?\s*\)`)
	blockRegex   = regexp.MustCompile(`(?s)(?:layout\s*\([^)]*\)\s*)?\buniform\s+([A-Za-z_]\w*)\s*\{(.*?)\}\s*([A-Za-z_]\w*)?\s*;`)
	memberRegex  = regexp.MustCompile(`(?:(?:lowp|mediump|highp)\s+)?([A-Za-z_]\w*)\s+([A-Za-z_]\w*)\s*(?:\[\s*([^\]]*)\s*\])?\s*;`)
	uniformRegex = regexp.MustCompile(`(?:layout\s*\([^)]*\)\s*)?\buniform\s+(?:(?:lowp|mediump|highp)\s+)?([A-Za-z_]\w*)\s+([A-Za-z_]\w*)\s*(?:\[\s*([^\]]*)\s*\])?\s*;`)
	varyingRegex = regexp.MustCompile(`(?m)^\s*(?:layout\s*\([^)]*\)\s*)?(?:(?:flat|smooth|noperspective)\s+)?(in|out)\s+(?:(?:lowp|mediump|highp)\s+)?[A-Za-z_]\w*\s+([A-Za-z_]\w*)\s*(?:\[[^\]]*\])?\s*;`)
)

// compileGLSL runs a small subset of a GLSL front end: comment stripping, the preprocessor
// (#define/#undef/#ifdef/#ifndef/#if/#else/#endif/#error), bracket balancing, and reflection
// of uniforms, uniform blocks and stage inputs/outputs. A uniform is active only if it is
// referenced outside of its declaration, mimicking drivers optimizing unused uniforms out.
func compileGLSL(src string) (*compiledUnit, error) {

	body, err := preprocess(stripComments(src))
	if err != nil {
		return nil, err
	}

	if err := checkBrackets(body); err != nil {
		return nil, err
	}

	if i := strings.IndexAny(body, "@$`\\"); i != -1 {
		return nil, fmt.Errorf("0:%d: error: syntax error, unexpected character '%c'", lineOf(body, i), body[i])
	}

	cu := &compiledUnit{
		hasMain: mainRegex.MatchString(body),
	}

	// Blocks are removed before plain uniforms are matched so their members aren't seen as uniforms
	rest := body
	for _, m := range blockRegex.FindAllStringSubmatch(body, -1) {

		members := memberRegex.FindAllStringSubmatch(m[2], -1)
		for _, mem := range members {
			if mem[3] == "" {
				continue
			}

			if _, err := parseArraySize(mem[3]); err != nil {
				return nil, fmt.Errorf("0:%d: error: '%s' : %s", lineOf(body, strings.Index(body, m[0])), mem[2], err.Error())
			}
		}

		rest = strings.Replace(rest, m[0], "", 1)

		b := blockDecl{Name: m[1]}
		if m[3] != "" {
			b.active = countIdent(rest, m[3]) > 0
		} else {
			for _, mem := range members {
				if countIdent(rest, mem[2]) > 0 {
					b.active = true
					break
				}
			}
		}

		cu.blocks = append(cu.blocks, b)
	}

	for _, m := range uniformRegex.FindAllStringSubmatch(rest, -1) {

		u := uniformDecl{Type: m[1], Name: m[2], ArraySize: 1}
		if m[3] != "" {
			size, err := parseArraySize(m[3])
			if err != nil {
				return nil, fmt.Errorf("0:%d: error: '%s' : %s", lineOf(body, strings.Index(body, m[0])), u.Name, err.Error())
			}
			u.ArraySize = size
		}

		u.active = countIdent(rest, u.Name) > 1
		cu.uniforms = append(cu.uniforms, u)
	}

	for _, m := range varyingRegex.FindAllStringSubmatch(rest, -1) {
		if m[1] == "in" {
			cu.ins = append(cu.ins, m[2])
		} else {
			cu.outs = append(cu.outs, m[2])
		}
	}

	return cu, nil
}

func parseArraySize(s string) (int, error) {

	size, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("array size must be a constant integer expression, got '%s'", s)
	}

	if size <= 0 {
		return 0, fmt.Errorf("array size must be greater than zero")
	}

	return size, nil
}

func countIdent(s, ident string) int {

	count := 0
	for _, id := range identRegex.FindAllString(s, -1) {
		if id == ident {
			count++
		}
	}

	return count
}

func lineOf(s string, index int) int {
	if index < 0 {
		return 0
	}
	return strings.Count(s[:index], "\n") + 1
}

// stripComments removes // and /* */ comments while keeping line numbers intact
func stripComments(src string) string {

	var sb strings.Builder
	sb.Grow(len(src))

	inLine, inBlock := false, false
	for i := 0; i < len(src); i++ {

		c := src[i]
		switch {
		case inLine:
			if c == '\n' {
				inLine = false
				sb.WriteByte(c)
			}
		case inBlock:
			if c == '*' && i+1 < len(src) && src[i+1] == '/' {
				inBlock = false
				i++
			} else if c == '\n' {
				sb.WriteByte(c)
			}
		case c == '/' && i+1 < len(src) && src[i+1] == '/':
			inLine = true
			i++
		case c == '/' && i+1 < len(src) && src[i+1] == '*':
			inBlock = true
			i++
		default:
			sb.WriteByte(c)
		}
	}

	return sb.String()
}

type condState struct {
	active       bool
	parentActive bool
	taken        bool
	seenElse     bool
}

func preprocess(src string) (string, error) {

	lines := strings.Split(src, "\n")
	defines := map[string]string{}
	stack := []condState{}
	active := func() bool {
		return len(stack) == 0 || stack[len(stack)-1].active
	}

	seenVersion := false
	seenCode := false

	out := make([]string, 0, len(lines))
	for i, line := range lines {

		lineNum := i + 1
		trimmed := strings.TrimSpace(line)

		if !strings.HasPrefix(trimmed, "#") {

			if trimmed != "" {
				seenCode = true
			}

			if active() {
				out = append(out, expandMacros(line, defines))
			} else {
				out = append(out, "")
			}
			continue
		}

		directive, args, _ := strings.Cut(strings.TrimSpace(trimmed[1:]), " ")
		args = strings.TrimSpace(args)

		// Directives are blanked so line numbers in errors stay correct
		out = append(out, "")

		switch directive {

		case "version":
			if seenVersion || seenCode {
				return "", fmt.Errorf("0:%d: error: #version must occur first in shader", lineNum)
			}
			seenVersion = true

		case "ifdef", "ifndef":
			_, defined := defines[args]
			cond := defined == (directive == "ifdef")
			stack = append(stack, condState{active: active() && cond, parentActive: active(), taken: cond})

		case "if":
			cond, err := evalIfExpr(args, defines)
			if err != nil {
				return "", fmt.Errorf("0:%d: error: %s", lineNum, err.Error())
			}
			stack = append(stack, condState{active: active() && cond, parentActive: active(), taken: cond})

		case "else":
			if len(stack) == 0 {
				return "", fmt.Errorf("0:%d: error: #else without #if", lineNum)
			}

			top := &stack[len(stack)-1]
			if top.seenElse {
				return "", fmt.Errorf("0:%d: error: #else after #else", lineNum)
			}
			top.seenElse = true
			top.active = top.parentActive && !top.taken

		case "endif":
			if len(stack) == 0 {
				return "", fmt.Errorf("0:%d: error: #endif without #if", lineNum)
			}
			stack = stack[:len(stack)-1]

		case "define":
			if !active() {
				continue
			}

			if !seenVersion && !seenCode {
				seenCode = true
			}

			name, value, _ := strings.Cut(args, " ")
			if !identRegex.MatchString(name) || identRegex.FindString(name) != name {
				return "", fmt.Errorf("0:%d: error: invalid macro name '%s'", lineNum, name)
			}
			defines[name] = strings.TrimSpace(value)

		case "undef":
			if active() {
				delete(defines, args)
			}

		case "error":
			if active() {
				return "", fmt.Errorf("0:%d: error: #error %s", lineNum, args)
			}

		case "extension", "pragma", "line":

		default:
			if active() {
				return "", fmt.Errorf("0:%d: error: invalid directive '#%s'", lineNum, directive)
			}
		}
	}

	if len(stack) > 0 {
		return "", fmt.Errorf("0:%d: error: unexpected end of file, missing #endif", len(lines))
	}

	if !seenVersion {
		return "", fmt.Errorf("0:1: error: missing #version directive")
	}

	return strings.Join(out, "\n"), nil
}

func evalIfExpr(expr string, defines map[string]string) (bool, error) {

	expr = strings.TrimSpace(expr)
	if strings.HasPrefix(expr, "defined") {
		name := strings.Trim(strings.TrimPrefix(expr, "defined"), " ()")
		_, ok := defines[name]
		return ok, nil
	}

	expanded := strings.TrimSpace(expandMacros(expr, defines))
	v, err := strconv.Atoi(expanded)
	if err != nil {
		return false, fmt.Errorf("unsupported #if expression '%s'", expr)
	}

	return v != 0, nil
}

func expandMacros(line string, defines map[string]string) string {

	if len(defines) == 0 {
		return line
	}

	// Bounded so self referencing macros can't loop forever
	for i := 0; i < 16; i++ {

		changed := false
		line = identRegex.ReplaceAllStringFunc(line, func(id string) string {
			v, ok := defines[id]
			if !ok || v == "" {
				return id
			}
			changed = true
			return v
		})

		if !changed {
			break
		}
	}

	return line
}

func checkBrackets(body string) error {

	pairs := map[byte]byte{')': '(', ']': '[', '}': '{'}
	stack := make([]int, 0, 16)
	for i := 0; i < len(body); i++ {

		c := body[i]
		switch c {
		case '(', '[', '{':
			stack = append(stack, i)
		case ')', ']', '}':
			if len(stack) == 0 || body[stack[len(stack)-1]] != pairs[c] {
				return fmt.Errorf("0:%d: error: syntax error, unexpected '%c'", lineOf(body, i), c)
			}
			stack = stack[:len(stack)-1]
		}
	}

	if len(stack) > 0 {
		return fmt.Errorf("0:%d: error: syntax error, unexpected end of file, unclosed '%c'", lineOf(body, stack[len(stack)-1]), body[stack[len(stack)-1]])
	}

	return nil
}
