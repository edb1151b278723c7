package dicomcodec

import (
	"github.com/cocosip/go-dicom/pkg/imaging/imagetypes"
)

// testPixelData is a minimal in-memory imagetypes.PixelData
type testPixelData struct {
	frames    [][]byte
	frameInfo *imagetypes.FrameInfo
}

func newTestPixelData(frameInfo *imagetypes.FrameInfo) *testPixelData {
	return &testPixelData{frameInfo: frameInfo}
}

func (p *testPixelData) GetFrame(frameIndex int) ([]byte, error) {
	if frameIndex < 0 || frameIndex >= len(p.frames) {
		return nil, nil
	}
	return p.frames[frameIndex], nil
}

func (p *testPixelData) AddFrame(frameData []byte) error {
	p.frames = append(p.frames, frameData)
	return nil
}

func (p *testPixelData) FrameCount() int {
	return len(p.frames)
}

func (p *testPixelData) GetFrameInfo() *imagetypes.FrameInfo {
	return p.frameInfo
}

func (p *testPixelData) IsEncapsulated() bool {
	return false
}
