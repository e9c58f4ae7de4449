package handler_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alia5/joymux/controller"
	"github.com/Alia5/joymux/internal/server/api"
	"github.com/Alia5/joymux/internal/server/api/handler"
	handlerTest "github.com/Alia5/joymux/internal/testing"
	"github.com/Alia5/joymux/internal/version"
	"github.com/Alia5/joymux/pkg/apiclient"
	"github.com/Alia5/joymux/pkg/apitypes"
	"github.com/Alia5/joymux/switchpad"
	"github.com/Alia5/joymux/virtual"
)

type fakeStatus struct{}

func (fakeStatus) Slots() []controller.SlotStatus {
	return []controller.SlotStatus{
		{Index: 0, Attached: true, Handle: 4, State: virtual.State{
			Buttons: virtual.ButtonA | virtual.ButtonL,
			StickL:  virtual.StickState{X: 100, Y: -100},
		}},
		{Index: 1},
	}
}

func (fakeStatus) Calibration() switchpad.CalibrationSet {
	return switchpad.CalibrationSet{
		FactoryLeft: switchpad.StickCalibration{
			X: switchpad.AxisCalibration{Min: 1, Center: 2, Max: 3},
		},
		HasUserRight: true,
	}
}

func (fakeStatus) Player() switchpad.PlayerNumber { return switchpad.PlayerThree }

func startClient(t *testing.T) *apiclient.Client {
	t.Helper()
	addr, done := handlerTest.StartAPIServer(t, func(r *api.Router, _ *api.Server) {
		handler.Register(r, fakeStatus{})
	})
	t.Cleanup(done)
	return apiclient.New(addr)
}

func TestPing(t *testing.T) {
	c := startClient(t)
	out, err := c.Ping(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "joymux", out.Server)
	assert.Equal(t, version.Version, out.Version)
	assert.NotEmpty(t, out.Version)
}

func TestSlotsList(t *testing.T) {
	c := startClient(t)
	out, err := c.SlotsList(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []apitypes.Slot{
		{Index: 0, Attached: true, Handle: 4, Buttons: "A+L", LX: 100, LY: -100},
		{Index: 1, Buttons: "none"},
	}, out.Slots)
}

func TestCalibration(t *testing.T) {
	c := startClient(t)
	out, err := c.Calibration(context.Background())
	require.NoError(t, err)
	assert.Equal(t, apitypes.Axis{Min: 1, Center: 2, Max: 3}, out.FactoryLeft.X)
	assert.True(t, out.HasUserRight)
	assert.False(t, out.HasUserLeft)
}

func TestPlayer(t *testing.T) {
	c := startClient(t)
	out, err := c.Player(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &apitypes.PlayerResponse{Player: 3, Name: "player 3"}, out)
}
