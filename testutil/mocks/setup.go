package mocks

import (
	"go.uber.org/mock/gomock"
)

func SetupNode(t gomock.TestReporter) *MockNode {
	ctrl := gomock.NewController(t)
	return NewMockNode(ctrl)
}

func SetupPoster(t gomock.TestReporter) *MockPoster {
	ctrl := gomock.NewController(t)
	return NewMockPoster(ctrl)
}
