package health

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

// Status represents the health status of a workspace component
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusUnhealthy Status = "unhealthy"
	StatusDegraded  Status = "degraded"
	StatusUnknown   Status = "unknown"
)

// severity orders statuses so the worst one decides a report
func (s Status) severity() int {
	switch s {
	case StatusUnhealthy:
		return 3
	case StatusDegraded:
		return 2
	case StatusUnknown:
		return 1
	}
	return 0
}

// CheckResult is the outcome of a single check
type CheckResult struct {
	Name     string
	Status   Status
	Message  string
	Duration time.Duration
	Details  map[string]interface{}
}

// Check inspects one workspace component under a name
type Check struct {
	Name string
	run  func(ctx context.Context) CheckResult
}

// Registry holds the checks of one workspace and runs them together
type Registry struct {
	mu      sync.RWMutex
	checks  map[string]Check
	service string
	version string
	startAt time.Time
}

// NewRegistry creates an empty registry
func NewRegistry(service, version string) *Registry {
	return &Registry{
		checks:  make(map[string]Check),
		service: service,
		version: version,
		startAt: time.Now(),
	}
}

// Register adds a check, replacing any check with the same name
func (r *Registry) Register(c Check) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.checks[c.Name] = c
}

// Check runs every registered check concurrently. Checks in the report are
// sorted by name; the overall status is the worst individual one.
func (r *Registry) Check(ctx context.Context) *Report {
	r.mu.RLock()
	checks := make([]Check, 0, len(r.checks))
	for _, c := range r.checks {
		checks = append(checks, c)
	}
	r.mu.RUnlock()

	results := make([]CheckResult, len(checks))
	var wg sync.WaitGroup
	for i, c := range checks {
		wg.Add(1)
		go func(i int, c Check) {
			defer wg.Done()
			start := time.Now()
			res := c.run(ctx)
			res.Name = c.Name
			res.Duration = time.Since(start)
			results[i] = res
		}(i, c)
	}
	wg.Wait()

	sort.Slice(results, func(i, j int) bool { return results[i].Name < results[j].Name })

	status := StatusHealthy
	for _, res := range results {
		if res.Status.severity() > status.severity() {
			status = res.Status
		}
	}

	return &Report{
		Service:   r.service,
		Version:   r.version,
		Status:    status,
		Uptime:    time.Since(r.startAt),
		Timestamp: time.Now(),
		Checks:    results,
	}
}

// Report is the combined result of one Registry.Check run
type Report struct {
	Service   string        `json:"service"`
	Version   string        `json:"version"`
	Status    Status        `json:"status"`
	Uptime    time.Duration `json:"uptime"`
	Timestamp time.Time     `json:"timestamp"`
	Checks    []CheckResult `json:"checks"`
}

// String returns a one-line summary naming the failing checks
func (r *Report) String() string {
	var failing []string
	for _, c := range r.Checks {
		if c.Status != StatusHealthy {
			failing = append(failing, fmt.Sprintf("%s=%s", c.Name, c.Status))
		}
	}
	return fmt.Sprintf("%s %s: %s, %d checks, failing %v", r.Service, r.Version, r.Status, len(r.Checks), failing)
}

// VerifyCheck reports unhealthy when verify returns an error, typically a
// structural invariant check of a data structure
func VerifyCheck(name string, verify func() error) Check {
	return Check{Name: name, run: func(ctx context.Context) CheckResult {
		if err := ctx.Err(); err != nil {
			return CheckResult{Status: StatusUnknown, Message: err.Error()}
		}
		if err := verify(); err != nil {
			return CheckResult{Status: StatusUnhealthy, Message: err.Error()}
		}
		return CheckResult{Status: StatusHealthy, Message: "invariants hold"}
	}}
}

// ThresholdCheck reports degraded once value() exceeds limit
func ThresholdCheck(name string, value func() int, limit int) Check {
	return Check{Name: name, run: func(ctx context.Context) CheckResult {
		v := value()
		res := CheckResult{
			Status:  StatusHealthy,
			Details: map[string]interface{}{"value": v, "limit": limit},
		}
		if v > limit {
			res.Status = StatusDegraded
			res.Message = fmt.Sprintf("%d exceeds %d", v, limit)
		}
		return res
	}}
}
