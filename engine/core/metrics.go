package core

const AVG_COUNT uint8 = 30

// Metrics keeps a rolling frame time average and a once-per-second FPS count.
type Metrics struct {
	frameAVGCounter    uint8
	msTimes            [AVG_COUNT]float64
	msAvg              float64
	frames             int32
	accumulatedFrameMS float64
	fps                float64
	drawCalls          uint32
	commands           uint32
}

func NewMetrics() *Metrics {
	return &Metrics{}
}

// Update records one frame that took frameElapsedTime seconds.
func (m *Metrics) Update(frameElapsedTime float64) {
	frameMS := frameElapsedTime * 1000.0
	m.msTimes[m.frameAVGCounter] = frameMS
	if m.frameAVGCounter == AVG_COUNT-1 {
		m.msAvg = 0
		for i := uint8(0); i < AVG_COUNT; i++ {
			m.msAvg += m.msTimes[i]
		}
		m.msAvg /= float64(AVG_COUNT)
	}
	m.frameAVGCounter++
	m.frameAVGCounter %= AVG_COUNT

	m.accumulatedFrameMS += frameMS
	if m.accumulatedFrameMS > 1000 {
		m.fps = float64(m.frames)
		m.accumulatedFrameMS -= 1000
		m.frames = 0
	}

	m.frames++
}

// RecordSubmission stores the size of the last submitted frame.
func (m *Metrics) RecordSubmission(commands, drawCalls uint32) {
	m.commands = commands
	m.drawCalls = drawCalls
}

func (m *Metrics) FPS() float64 {
	return m.fps
}

func (m *Metrics) FrameTime() float64 {
	return m.msAvg
}

func (m *Metrics) Frame() (float64, float64) {
	return m.fps, m.msAvg
}

func (m *Metrics) Submission() (commands uint32, drawCalls uint32) {
	return m.commands, m.drawCalls
}
