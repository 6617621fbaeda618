package engine

import (
	"errors"
	"testing"

	"github.com/rxtech-lab/coin-signal/internal/types"
	"github.com/stretchr/testify/suite"
)

type EngineTestSuite struct {
	suite.Suite
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineTestSuite))
}

func (suite *EngineTestSuite) TestOnProcessDataCallbackWithProgress() {
	var progress []int
	callback := OnProcessDataCallback(func(current int, total int) error {
		progress = append(progress, current)
		return nil
	})

	for i := 1; i <= 5; i++ {
		err := callback(i, 5)
		suite.NoError(err)
	}

	suite.Equal([]int{1, 2, 3, 4, 5}, progress)
}

func (suite *EngineTestSuite) TestOnRunStartCallbackCanAbort() {
	callback := OnRunStartCallback(func(totalCandles int) error {
		if totalCandles == 0 {
			return errors.New("no candles")
		}

		return nil
	})

	suite.Error(callback(0))
	suite.NoError(callback(10))
}

func (suite *EngineTestSuite) TestLifecycleCallbacksDefaultToNil() {
	callbacks := LifecycleCallbacks{}

	suite.Nil(callbacks.OnRunStart)
	suite.Nil(callbacks.OnProcessData)
	suite.Nil(callbacks.OnRunEnd)

	var seen types.Run
	onEnd := OnRunEndCallback(func(run types.Run) { seen = run })
	callbacks.OnRunEnd = &onEnd

	(*callbacks.OnRunEnd)(types.Run{RunID: "run-1"})
	suite.Equal("run-1", seen.RunID)
}
