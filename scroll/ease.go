package scroll

import (
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/milk9111/scrollscrub/common"
)

// Named eases, written as tengo expressions over p.
var namedEases = map[string]string{
	"power1.in":    "p * p",
	"power1.out":   "1 - (1 - p) * (1 - p)",
	"power1.inout": "p < 0.5 ? 2 * p * p : 1 - (-2 * p + 2) * (-2 * p + 2) / 2",
	"power2.in":    "p * p * p",
	"power2.out":   "1 - (1 - p) * (1 - p) * (1 - p)",
	"sine.in":      "1 - math.cos(p * math.pi / 2)",
	"sine.out":     "math.sin(p * math.pi / 2)",
	"sine.inout":   "-(math.cos(math.pi * p) - 1) / 2",
}

// Ease reshapes progress through a tengo expression. A nil *Ease is linear.
type Ease struct {
	expr string

	mu       sync.Mutex
	compiled *tengo.Compiled
	failed   bool
}

// NewEase compiles expr, which is either a named ease ("power1.out") or a
// tengo expression over p ("p * p"). Empty, "none" and "linear" return nil.
func NewEase(expr string) (*Ease, error) {
	expr = strings.TrimSpace(expr)
	switch strings.ToLower(expr) {
	case "", "none", "linear":
		return nil, nil
	}
	src := expr
	if named, ok := namedEases[strings.ToLower(expr)]; ok {
		src = named
	}

	script := tengo.NewScript([]byte("math := import(\"math\")\n__out := " + src))
	script.SetImports(stdlib.GetModuleMap("math"))
	_ = script.Add("p", 0.0)
	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("scroll: compile ease %q: %w", expr, err)
	}
	return &Ease{expr: expr, compiled: compiled}, nil
}

// Apply returns the eased progress, clamped to [0, 1]. If the script fails at
// run time the ease degrades to linear.
func (e *Ease) Apply(p float64) float64 {
	p = common.Clamp01(p)
	if e == nil {
		return p
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.failed {
		return p
	}
	if err := e.compiled.Set("p", p); err != nil {
		return e.fail(p, err)
	}
	if err := e.compiled.Run(); err != nil {
		return e.fail(p, err)
	}
	return common.Clamp01(e.compiled.Get("__out").Float())
}

func (e *Ease) fail(p float64, err error) float64 {
	log.Printf("scroll: ease %q failed, falling back to linear: %v", e.expr, err)
	e.failed = true
	return p
}

func (e *Ease) String() string {
	if e == nil {
		return "linear"
	}
	return e.expr
}
