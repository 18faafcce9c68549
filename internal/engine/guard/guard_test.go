package guard_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/forge/internal/core/ports/mocks"
	"go.trai.ch/forge/internal/engine/guard"
	"go.uber.org/mock/gomock"
)

func TestMutationGuard_RejectsAllMutations(t *testing.T) {
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	// One diagnostic per rejected mutation.
	logger.EXPECT().Warn(gomock.Any()).Times(5)

	var b ports.PlanBuilder = guard.New(logger)

	id, ok := b.AddStep(ports.StepSpec{Module: "app", Description: "compile"})
	assert.Equal(t, ports.StepID(0), id)
	assert.False(t, ok)

	id, ok = b.AddWriteFileStep("/out/gen.go", []byte("package gen"))
	assert.Equal(t, ports.StepID(0), id)
	assert.False(t, ok)

	id, ok = b.AddSealDirectoryStep("/out", []string{"gen.go"})
	assert.Equal(t, ports.StepID(0), id)
	assert.False(t, ok)

	assert.False(t, b.AddModule("app"))
	assert.False(t, b.AddModuleDependency("app", "lib"))
}

func TestMutationGuard_PermitsBookkeeping(t *testing.T) {
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	// Bookkeeping operations produce no diagnostics.

	var b ports.PlanBuilder = guard.New(logger)

	assert.True(t, b.DeclareValue("cflags"))
	assert.True(t, b.DeclareValueDependency("cflags", "platform"))
	assert.True(t, b.ReserveSealDirectory("/out"))
}
