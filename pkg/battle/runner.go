package battle

import (
	"context"
	"log"
	"sync/atomic"
	"time"
)

// Runner 在独立 goroutine 中按真实时间驱动一场战斗
//
// Start 之后模拟器归 Runner 的 goroutine 独占，调用方只能通过
// 返回的通道读取帧，通过 SetPaused/SetSpeed 控制。
type Runner struct {
	sim       *Simulator
	scheduler *Scheduler
	opening   Frame // 创建时的状态，Start 之前取得

	paused  atomic.Bool
	speed   atomic.Int32
	started atomic.Bool
}

// NewRunner 创建 Runner，初始为 1 倍速、未暂停
func NewRunner(sim *Simulator) *Runner {
	r := &Runner{
		sim:       sim,
		scheduler: NewScheduler(sim),
		opening:   sim.Frame(),
	}
	r.speed.Store(1)
	return r
}

// Opening 返回开战时的状态，供调用方在第一帧到达前显示
// 不会访问模拟器，Start 之后也可以安全调用
func (r *Runner) Opening() Frame {
	return r.opening
}

// SetPaused 设置暂停，在下一个 tick 之前生效，可在任意 goroutine 调用
func (r *Runner) SetPaused(paused bool) {
	r.paused.Store(paused)
}

// Paused 是否暂停
func (r *Runner) Paused() bool {
	return r.paused.Load()
}

// SetSpeed 设置倍速（每个真实步长推进的 tick 数），小于 1 时按 1 处理
func (r *Runner) SetSpeed(speed int) {
	if speed < 1 {
		speed = 1
	}
	r.speed.Store(int32(speed))
}

// Speed 当前倍速
func (r *Runner) Speed() int {
	return int(r.speed.Load())
}

// Start 启动模拟，返回帧通道
//
// 第一帧是开战时的状态。战斗结束后发送结束帧并关闭通道；
// ctx 取消时也会关闭通道。两种情况下内部定时器都会停止。
// 重复调用 Start 返回一个已关闭的通道。
func (r *Runner) Start(ctx context.Context) <-chan Frame {
	out := make(chan Frame, 16)
	if !r.started.CompareAndSwap(false, true) {
		close(out)
		return out
	}
	go r.loop(ctx, out)
	return out
}

func (r *Runner) loop(ctx context.Context, out chan<- Frame) {
	defer close(out)

	interval := r.scheduler.Interval()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Printf("[Runner] Started (interval=%v)", interval)

	r.sim.SetPaused(r.paused.Load())
	if !send(ctx, out, r.sim.Frame()) {
		log.Printf("[Runner] Cancelled before first frame")
		return
	}

	for {
		select {
		case <-ctx.Done():
			log.Printf("[Runner] Cancelled at tick %d", r.sim.Tick())
			return
		case <-ticker.C:
			r.sim.SetPaused(r.paused.Load())
			dt := interval * time.Duration(r.speed.Load())
			for _, f := range r.scheduler.Advance(dt) {
				if !send(ctx, out, f) {
					log.Printf("[Runner] Cancelled at tick %d", r.sim.Tick())
					return
				}
				if f.Outcome != nil {
					log.Printf("[Runner] Finished: %s", f.Outcome.Result)
					return
				}
			}
		}
	}
}

// send 发送一帧，ctx 取消时放弃并返回 false
func send(ctx context.Context, out chan<- Frame, f Frame) bool {
	select {
	case out <- f:
		return true
	case <-ctx.Done():
		return false
	}
}
