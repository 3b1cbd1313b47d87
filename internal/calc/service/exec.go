package service

import (
	"context"
	"fmt"
	"math/big"
	"sort"
	"strconv"
	"strings"
	"time"

	mzwerror "github.com/msto63/mZW/foundation/core/error"
	"github.com/msto63/mZW/foundation/core/errors"
	"github.com/msto63/mZW/foundation/utils/numfmt"
	"github.com/msto63/mZW/pkg/heap"
)

// DisplayDigits is the length above which Exec abbreviates values
const DisplayDigits = 80

type command struct {
	usage string
	help  string
	min   int
	max   int // -1 for variadic
	run   func(s *Service, args []string) (string, error)
}

var commands map[string]command

func init() {
	commands = map[string]command{
		"heap push":    {"heap push <min|max> <v>...", "push values onto a heap", 2, -1, execHeapPush},
		"heap pop":     {"heap pop <min|max>", "remove the root", 1, 1, execHeapPop},
		"heap peek":    {"heap peek <min|max>", "show the root", 1, 1, execHeapPeek},
		"heap size":    {"heap size <min|max>", "number of elements", 1, 1, execHeapSize},
		"heap sort":    {"heap sort [desc] <v>...", "heap-sort the given values", 1, -1, execHeapSort},
		"tree insert":  {"tree insert <v>...", "insert values", 1, -1, execTreeInsert},
		"tree remove":  {"tree remove <v>", "remove a value", 1, 1, execTreeRemove},
		"tree show":    {"tree show [pre|in|post|level] [depth]", "traverse the tree", 0, 2, execTreeShow},
		"tree nth":     {"tree nth <n>", "n-th smallest value, 1-indexed", 1, 1, execTreeNth},
		"tree rank":    {"tree rank <v>", "position of a value", 1, 1, execTreeRank},
		"tree range":   {"tree range <a> <b>", "values within [a, b]", 2, 2, execTreeRange},
		"tree stats":   {"tree stats", "size, height and aggregates", 0, 0, execTreeStats},
		"array push":   {"array push <v>...", "append values", 1, -1, execArrayPush},
		"array pop":    {"array pop", "remove the last value", 0, 0, execArrayPop},
		"array get":    {"array get <i>", "value at index", 1, 1, execArrayGet},
		"array set":    {"array set <i> <v>", "replace value at index", 2, 2, execArraySet},
		"array max":    {"array max [<start> <end>]", "maximum, optionally over a range", 0, 2, execArrayMax},
		"array sort":   {"array sort [asc|desc]", "sort in place", 0, 1, execArraySort},
		"array show":   {"array show", "list the values", 0, 0, execArrayShow},
		"grid ack":     {"grid ack <m> <n>", "Ackermann value A(m, n)", 2, 2, execGridAck},
		"grid path":    {"grid path <m> <n>", "memoized pairs leading to A(m, n)", 2, 2, execGridPath},
		"grid growth":  {"grid growth <m> [upto]", "growth of row m", 1, 2, execGridGrowth},
		"grid largest": {"grid largest", "largest memoized value", 0, 0, execGridLargest},
		"tower eval":   {"tower eval <base> <height>", "evaluate base^^height", 2, 2, execTowerEval},
		"tower check":  {"tower check <base> <height>", "test whether base^^height fits", 2, 2, execTowerCheck},
		"tower show":   {"tower show", "render the current tower", 0, 0, execTowerShow},
		"calc":         {"calc <op> <a> [b]", "arithmetic: " + strings.Join(CalcOps(), " "), 2, 3, execCalc},
		"fmt":          {"fmt <style> <v>", "render a value: plain grouped scientific compact roman hex binary", 2, 2, execFormat},
		"roman":        {"roman <numeral>", "parse a Roman numeral", 1, 1, execRoman},
		"reset":        {"reset", "discard the workspace", 0, 0, execReset},
		"health":       {"health", "run the structural checks", 0, 0, execHealth},
		"help":         {"help", "list commands", 0, 0, execHelp},
	}
}

// Exec interprets one command line against the workspace and returns the
// text to show. Blank lines and lines starting with # yield no output.
func (s *Service) Exec(line string) (string, error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", nil
	}
	fields := strings.Fields(line)
	head := strings.ToLower(fields[0])

	name, args := head, fields[1:]
	if len(fields) > 1 {
		if _, ok := commands[head+" "+strings.ToLower(fields[1])]; ok {
			name, args = head+" "+strings.ToLower(fields[1]), fields[2:]
		}
	}

	cmd, ok := commands[name]
	if !ok {
		return "", errors.InvalidInput(errors.ModuleService, "Exec", fields[0], "a known command, see help")
	}
	if len(args) < cmd.min || (cmd.max >= 0 && len(args) > cmd.max) {
		return "", errors.NewErrorBuilder(errors.ModuleService).
			Operation("Exec").
			Code(mzwerror.CodeValidationFailed).
			Messagef("usage: %s", cmd.usage).
			Detail("command", name).
			Build()
	}

	s.logger.Debug("exec", "command", name, "args", len(args))
	return cmd.run(s, args)
}

// Usage returns one line per command
func Usage() string {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		c := commands[name]
		fmt.Fprintf(&b, "%-38s %s\n", c.usage, c.help)
	}
	return strings.TrimRight(b.String(), "\n")
}

// argument parsing

func parseValue(s string) (*big.Int, error) {
	return numfmt.Parse(s)
}

func parseValues(args []string) ([]any, error) {
	out := make([]any, len(args))
	for i, a := range args {
		v, err := parseValue(a)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func parseInt(name, s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.InvalidInput(errors.ModuleService, "Exec", s, name+" as an integer")
	}
	return v, nil
}

func parseInt64(name, s string) (int64, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, errors.InvalidInput(errors.ModuleService, "Exec", s, name+" as an integer")
	}
	return v, nil
}

func parseKind(s string) (heap.Kind, error) {
	switch strings.ToLower(s) {
	case "min":
		return heap.Min, nil
	case "max":
		return heap.Max, nil
	}
	return heap.Min, errors.InvalidInput(errors.ModuleService, "Exec", s, "min or max")
}

// rendering

func render(v *big.Int) string {
	if v == nil {
		return "-"
	}
	return numfmt.Abbreviate(v, DisplayDigits)
}

func renderList(vs []*big.Int) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = render(v)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func renderAck(r AckermannResult) string {
	out := fmt.Sprintf("A(%d, %d) = %s", r.M, r.N, render(r.Value))
	if !r.Exact() {
		out += fmt.Sprintf("  (clamped: %s)", r.Clamp)
	}
	return out
}

// heap

func execHeapPush(s *Service, args []string) (string, error) {
	kind, err := parseKind(args[0])
	if err != nil {
		return "", err
	}
	values, err := parseValues(args[1:])
	if err != nil {
		return "", err
	}
	for _, v := range values {
		if _, err := s.HeapPush(kind, v); err != nil {
			return "", err
		}
	}
	return fmt.Sprintf("%s-heap size %d", kind, s.HeapSize(kind)), nil
}

func execHeapPop(s *Service, args []string) (string, error) {
	kind, err := parseKind(args[0])
	if err != nil {
		return "", err
	}
	v, err := s.HeapPop(kind)
	if err != nil {
		return "", err
	}
	return render(v), nil
}

func execHeapPeek(s *Service, args []string) (string, error) {
	kind, err := parseKind(args[0])
	if err != nil {
		return "", err
	}
	v, err := s.HeapPeek(kind)
	if err != nil {
		return "", err
	}
	return render(v), nil
}

func execHeapSize(s *Service, args []string) (string, error) {
	kind, err := parseKind(args[0])
	if err != nil {
		return "", err
	}
	return strconv.Itoa(s.HeapSize(kind)), nil
}

func execHeapSort(s *Service, args []string) (string, error) {
	desc := false
	if strings.EqualFold(args[0], "desc") {
		desc, args = true, args[1:]
	}
	values, err := parseValues(args)
	if err != nil {
		return "", err
	}
	sorted, err := s.HeapSort(values, desc)
	if err != nil {
		return "", err
	}
	return renderList(sorted), nil
}

// tree

func execTreeInsert(s *Service, args []string) (string, error) {
	values, err := parseValues(args)
	if err != nil {
		return "", err
	}
	if err := s.TreeInsert(values...); err != nil {
		return "", err
	}
	st := s.TreeStats()
	return fmt.Sprintf("size %d, height %d", st.Size, st.Height), nil
}

func execTreeRemove(s *Service, args []string) (string, error) {
	v, err := parseValue(args[0])
	if err != nil {
		return "", err
	}
	removed, err := s.TreeRemove(v)
	if err != nil {
		return "", err
	}
	if !removed {
		return "not found", nil
	}
	return "removed " + render(v), nil
}

func execTreeShow(s *Service, args []string) (string, error) {
	order, depth := "in", 0
	if len(args) > 0 {
		order = args[0]
	}
	if len(args) > 1 {
		d, err := parseInt("depth", args[1])
		if err != nil {
			return "", err
		}
		depth = d
	}
	values, err := s.TreeTraverse(order, depth)
	if err != nil {
		return "", err
	}
	return renderList(values), nil
}

func execTreeNth(s *Service, args []string) (string, error) {
	n, err := parseInt("n", args[0])
	if err != nil {
		return "", err
	}
	v, err := s.TreeNth(n)
	if err != nil {
		return "", err
	}
	return render(v), nil
}

func execTreeRank(s *Service, args []string) (string, error) {
	v, err := parseValue(args[0])
	if err != nil {
		return "", err
	}
	rank, err := s.TreeRank(v)
	if err != nil {
		return "", err
	}
	return strconv.Itoa(rank), nil
}

func execTreeRange(s *Service, args []string) (string, error) {
	a, err := parseValue(args[0])
	if err != nil {
		return "", err
	}
	b, err := parseValue(args[1])
	if err != nil {
		return "", err
	}
	values, err := s.TreeRange(a, b)
	if err != nil {
		return "", err
	}
	return renderList(values), nil
}

func execTreeStats(s *Service, _ []string) (string, error) {
	st := s.TreeStats()
	return fmt.Sprintf("size=%d height=%d sum=%s min=%s max=%s",
		st.Size, st.Height, render(st.Sum), render(st.Min), render(st.Max)), nil
}

// array

func execArrayPush(s *Service, args []string) (string, error) {
	values, err := parseValues(args)
	if err != nil {
		return "", err
	}
	idx, err := s.ArrayPush(values...)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("index %d", idx), nil
}

func execArrayPop(s *Service, _ []string) (string, error) {
	v, err := s.ArrayPop()
	if err != nil {
		return "", err
	}
	return render(v), nil
}

func execArrayGet(s *Service, args []string) (string, error) {
	i, err := parseInt("index", args[0])
	if err != nil {
		return "", err
	}
	v, err := s.ArrayGet(i)
	if err != nil {
		return "", err
	}
	return render(v), nil
}

func execArraySet(s *Service, args []string) (string, error) {
	i, err := parseInt("index", args[0])
	if err != nil {
		return "", err
	}
	v, err := parseValue(args[1])
	if err != nil {
		return "", err
	}
	prev, err := s.ArraySet(i, v)
	if err != nil {
		return "", err
	}
	return "previous " + render(prev), nil
}

func execArrayMax(s *Service, args []string) (string, error) {
	var v *big.Int
	var err error
	switch len(args) {
	case 0:
		v, err = s.ArrayMax()
	case 2:
		var start, end int
		if start, err = parseInt("start", args[0]); err != nil {
			return "", err
		}
		if end, err = parseInt("end", args[1]); err != nil {
			return "", err
		}
		v, err = s.ArrayRangeMax(start, end)
	default:
		return "", errors.InvalidInput(errors.ModuleService, "Exec", strings.Join(args, " "), "no range or <start> <end>")
	}
	if err != nil {
		return "", err
	}
	return render(v), nil
}

func execArraySort(s *Service, args []string) (string, error) {
	ascending := true
	if len(args) == 1 {
		switch strings.ToLower(args[0]) {
		case "asc":
		case "desc":
			ascending = false
		default:
			return "", errors.InvalidInput(errors.ModuleService, "Exec", args[0], "asc or desc")
		}
	}
	if err := s.ArraySort(ascending); err != nil {
		return "", err
	}
	return renderList(s.ArrayValues()), nil
}

func execArrayShow(s *Service, _ []string) (string, error) {
	info := s.ArrayInfo()
	return fmt.Sprintf("%s (size %d, capacity %d, resizes %d)", renderList(s.ArrayValues()), info.Size, info.Capacity, info.Resizes), nil
}

// grid

func parsePair(args []string) (int64, int64, error) {
	m, err := parseInt64("m", args[0])
	if err != nil {
		return 0, 0, err
	}
	n, err := parseInt64("n", args[1])
	if err != nil {
		return 0, 0, err
	}
	return m, n, nil
}

func execGridAck(s *Service, args []string) (string, error) {
	m, n, err := parsePair(args)
	if err != nil {
		return "", err
	}
	r, err := s.Ackermann(m, n)
	if err != nil {
		return "", err
	}
	return renderAck(r), nil
}

func execGridPath(s *Service, args []string) (string, error) {
	m, n, err := parsePair(args)
	if err != nil {
		return "", err
	}
	path, err := s.AckermannPath(m, n)
	if err != nil {
		return "", err
	}
	lines := make([]string, len(path))
	for i, r := range path {
		lines[i] = renderAck(r)
	}
	return strings.Join(lines, "\n"), nil
}

func execGridGrowth(s *Service, args []string) (string, error) {
	m, err := parseInt64("m", args[0])
	if err != nil {
		return "", err
	}
	upTo := int64(10)
	if len(args) > 1 {
		if upTo, err = parseInt64("upto", args[1]); err != nil {
			return "", err
		}
	}
	steps, err := s.AckermannGrowth(m, upTo)
	if err != nil {
		return "", err
	}
	if len(steps) == 0 {
		return "no exact values below the ceiling", nil
	}
	lines := make([]string, len(steps))
	for i, st := range steps {
		if st.Increase == nil {
			lines[i] = fmt.Sprintf("n=%d  %s", st.N, render(st.Value))
			continue
		}
		lines[i] = fmt.Sprintf("n=%d  %s  +%s  x%.4f", st.N, render(st.Value), render(st.Increase), st.Ratio)
	}
	return strings.Join(lines, "\n"), nil
}

func execGridLargest(s *Service, _ []string) (string, error) {
	v, err := s.GridLargest()
	if err != nil {
		return "", err
	}
	return render(v), nil
}

// tower

func parseTower(args []string) (*big.Int, int, error) {
	base, err := parseValue(args[0])
	if err != nil {
		return nil, 0, err
	}
	height, err := parseInt("height", args[1])
	if err != nil {
		return nil, 0, err
	}
	return base, height, nil
}

func execTowerEval(s *Service, args []string) (string, error) {
	base, height, err := parseTower(args)
	if err != nil {
		return "", err
	}
	v, err := s.Tetrate(base, height)
	if err != nil {
		return "", err
	}
	return render(v), nil
}

func execTowerCheck(s *Service, args []string) (string, error) {
	base, height, err := parseTower(args)
	if err != nil {
		return "", err
	}
	c, err := s.TowerCheck(base, height)
	if err != nil {
		return "", err
	}
	verdict := "computable"
	if !c.Computable {
		verdict = "exceeds the ceiling"
	}
	return fmt.Sprintf("%s: %s (max feasible height %d)", c.Expression, verdict, c.MaxFeasibleHeight), nil
}

func execTowerShow(s *Service, _ []string) (string, error) {
	return s.TowerRender(), nil
}

// calc, fmt and workspace

func execCalc(s *Service, args []string) (string, error) {
	a, err := parseValue(args[1])
	if err != nil {
		return "", err
	}
	var b *big.Int
	if len(args) == 3 {
		if b, err = parseValue(args[2]); err != nil {
			return "", err
		}
	} else if !IsUnary(args[0]) {
		return "", errors.InvalidInput(errors.ModuleService, "Exec", args[0], "a second operand")
	}
	var bArg any
	if b != nil {
		bArg = b
	}
	v, err := s.Calc(args[0], a, bArg)
	if err != nil {
		return "", err
	}
	return render(v), nil
}

func execFormat(s *Service, args []string) (string, error) {
	v, err := parseValue(args[1])
	if err != nil {
		return "", err
	}
	return s.Format(strings.ToLower(args[0]), v)
}

func execRoman(_ *Service, args []string) (string, error) {
	v, err := numfmt.FromRoman(args[0])
	if err != nil {
		return "", err
	}
	return v.String(), nil
}

func execReset(s *Service, _ []string) (string, error) {
	if err := s.Reset(); err != nil {
		return "", err
	}
	return "workspace reset", nil
}

func execHealth(s *Service, _ []string) (string, error) {
	report := s.Health(context.Background())
	lines := []string{fmt.Sprintf("status: %s", report.Status)}
	for _, c := range report.Checks {
		line := fmt.Sprintf("  %-6s %s", c.Name, c.Status)
		if c.Message != "" {
			line += "  " + c.Message
		}
		lines = append(lines, line)
	}
	lines = append(lines, fmt.Sprintf("uptime: %s", report.Uptime.Round(time.Millisecond)))
	return strings.Join(lines, "\n"), nil
}

func execHelp(_ *Service, _ []string) (string, error) {
	return Usage(), nil
}
