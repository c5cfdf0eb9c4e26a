package scripting

import (
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/snekecs/snek/internal/config"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM for rule formulas.
// Single-goroutine access only (game loop). Every call falls back to the
// built-in formula when the script function is missing or fails.
type Engine struct {
	vm    *lua.LState
	speed config.SpeedConfig
	log   *zap.Logger
}

// NewEngine starts a Lua VM and runs every script under scriptsDir/core in
// name order. Without scripts only the built-in formulas are used.
func NewEngine(scriptsDir string, speed config.SpeedConfig, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState()
	vm.SetGlobal("MIN_INTERVAL_MS", lua.LNumber(speed.MinInterval.Milliseconds()))
	vm.SetGlobal("MAX_INTERVAL_MS", lua.LNumber(speed.MaxInterval.Milliseconds()))
	vm.SetGlobal("MAX_SPEED", lua.LNumber(speed.MaxSpeed))

	e := &Engine{vm: vm, speed: speed, log: log}
	paths, err := filepath.Glob(filepath.Join(scriptsDir, "core", "*.lua"))
	if err != nil {
		vm.Close()
		return nil, fmt.Errorf("list core scripts: %w", err)
	}
	sort.Strings(paths)
	for _, path := range paths {
		if err := vm.DoFile(path); err != nil {
			vm.Close()
			return nil, fmt.Errorf("run %s: %w", path, err)
		}
		log.Debug("rules script loaded", zap.String("file", path))
	}
	if len(paths) == 0 {
		log.Info("no rules scripts, using built-in formulas", zap.String("dir", scriptsDir))
	}
	return e, nil
}

// LoadString runs a chunk of Lua source, mostly for tests and overrides.
func (e *Engine) LoadString(src string) error {
	return e.vm.DoString(src)
}

// TickInterval calls calc_interval(speed), which returns milliseconds.
func (e *Engine) TickInterval(speed int) time.Duration {
	ms, ok := e.callNumber("calc_interval", lua.LNumber(speed))
	if !ok || ms <= 0 {
		return DefaultInterval(e.speed, speed)
	}
	return time.Duration(ms) * time.Millisecond
}

// AppleScore calls calc_apple_score(length, speed).
func (e *Engine) AppleScore(length, speed int) int {
	pts, ok := e.callNumber("calc_apple_score", lua.LNumber(length), lua.LNumber(speed))
	if !ok {
		return DefaultAppleScore(length, speed)
	}
	return int(pts)
}

func (e *Engine) callNumber(name string, args ...lua.LValue) (float64, bool) {
	fn := e.vm.GetGlobal(name)
	if fn == lua.LNil {
		return 0, false
	}
	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, args...); err != nil {
		e.log.Error("lua call failed", zap.String("func", name), zap.Error(err))
		return 0, false
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	n, ok := result.(lua.LNumber)
	if !ok {
		e.log.Error("lua function returned non-number", zap.String("func", name))
		return 0, false
	}
	return float64(n), true
}

func (e *Engine) Close() {
	e.vm.Close()
}

// DefaultInterval is min + ((max-min)/maxSpeed) * (maxSpeed-speed), with the
// step truncated to whole milliseconds.
func DefaultInterval(cfg config.SpeedConfig, speed int) time.Duration {
	if speed > cfg.MaxSpeed {
		speed = cfg.MaxSpeed
	}
	if speed < 0 {
		speed = 0
	}
	step := (cfg.MaxInterval - cfg.MinInterval).Milliseconds() / int64(cfg.MaxSpeed)
	ms := cfg.MinInterval.Milliseconds() + step*int64(cfg.MaxSpeed-speed)
	return time.Duration(ms) * time.Millisecond
}

func DefaultAppleScore(length, speed int) int {
	return 10 + speed*2 + length/5
}
