package battle

import "time"

// Scheduler 把流逝的时间换算成固定步长的 tick
//
// 调用方提供经过的时间，Scheduler 累积到满一个步长就执行一个 tick，
// 余数留到下次。暂停期间经过的时间直接丢弃，不会在恢复后补算。
// 测试可以直接调用 Advance 推进，不需要真实等待。
type Scheduler struct {
	sim      *Simulator
	interval time.Duration
	pending  time.Duration
}

// NewScheduler 创建驱动 sim 的调度器，步长取自模拟器
func NewScheduler(sim *Simulator) *Scheduler {
	return &Scheduler{
		sim:      sim,
		interval: sim.Interval(),
	}
}

// Advance 经过 dt 时间，返回期间产生的所有帧（可能为空）
// 战斗在中途结束时，结束帧是最后一个元素
func (s *Scheduler) Advance(dt time.Duration) []Frame {
	if s.sim.Concluded() {
		return nil
	}
	if s.sim.Paused() {
		s.pending = 0
		return nil
	}

	s.pending += dt
	var frames []Frame
	for s.pending >= s.interval {
		s.pending -= s.interval
		frames = append(frames, s.sim.Step())
		if s.sim.Concluded() {
			s.pending = 0
			break
		}
	}
	return frames
}

// Interval 步长
func (s *Scheduler) Interval() time.Duration {
	return s.interval
}

// Pending 尚未满一个步长的累积时间
func (s *Scheduler) Pending() time.Duration {
	return s.pending
}
