package roster_test

import (
	"context"
	"testing"

	"github.com/dmelnich/roster"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type findTestSuite struct {
	suite.Suite
	db     *roster.DB
	closer roster.Closer
}

func (fts *findTestSuite) SetupTest() {
	db, closer, err := roster.New(nil)
	fts.Require().NoError(err)

	fts.db = db
	fts.closer = closer

	seedStudents(fts.T(), db, 5)
}

func (fts *findTestSuite) TearDownTest() {
	if err := fts.closer(); err != nil {
		fts.Require().NoError(err)
	}
}

func (fts *findTestSuite) ids(records []roster.Record) []int {
	ids := make([]int, len(records))
	for i := range records {
		ids[i] = records[i].ID()
	}

	return ids
}

func (fts *findTestSuite) TestFindAll_Ascend() {
	var records []roster.Record
	err := fts.db.View(context.Background(), func(tx *roster.Tx) error {
		return tx.Find(context.Background(), roster.Q(), &records)
	})

	fts.Require().NoError(err)
	fts.Assert().Equal([]int{1, 2, 3, 4, 5}, fts.ids(records))
	fts.Assert().Equal("student-1", records[0].StringOrDefault("name", ""))
	fts.Assert().Equal(24, records[4].IntOrDefault("age", 0))
}

func (fts *findTestSuite) TestFindAll_Descend() {
	var records []roster.Record
	err := fts.db.View(context.Background(), func(tx *roster.Tx) error {
		return tx.Find(context.Background(), roster.Q().Order(roster.Descend), &records)
	})

	fts.Require().NoError(err)
	fts.Assert().Equal([]int{5, 4, 3, 2, 1}, fts.ids(records))
}

func (fts *findTestSuite) TestFind_IDRange() {
	var records []roster.Record
	err := fts.db.View(context.Background(), func(tx *roster.Tx) error {
		return tx.Find(context.Background(), roster.Q().IDRange(2, 4), &records)
	})

	fts.Require().NoError(err)
	fts.Assert().Equal([]int{2, 3, 4}, fts.ids(records))
}

func (fts *findTestSuite) TestFind_IDRange_Descend() {
	var records []roster.Record
	err := fts.db.View(context.Background(), func(tx *roster.Tx) error {
		return tx.Find(context.Background(), roster.Q().Order(roster.Descend).IDRange(2, 4), &records)
	})

	fts.Require().NoError(err)
	fts.Assert().Equal([]int{4, 3, 2}, fts.ids(records))
}

func (fts *findTestSuite) TestFind_Limit() {
	var records []roster.Record
	err := fts.db.View(context.Background(), func(tx *roster.Tx) error {
		return tx.Find(context.Background(), roster.Q().Limit(2), &records)
	})

	fts.Require().NoError(err)
	fts.Assert().Equal([]int{1, 2}, fts.ids(records))
}

func (fts *findTestSuite) TestFind_Descend_Limit() {
	var records []roster.Record
	err := fts.db.View(context.Background(), func(tx *roster.Tx) error {
		return tx.Find(context.Background(), roster.Q().Order(roster.Descend).Limit(2), &records)
	})

	fts.Require().NoError(err)
	fts.Assert().Equal([]int{5, 4}, fts.ids(records))
}

func (fts *findTestSuite) TestFind_EmptyRange() {
	var records []roster.Record
	err := fts.db.View(context.Background(), func(tx *roster.Tx) error {
		return tx.Find(context.Background(), roster.Q().IDRange(10, 20), &records)
	})

	fts.Require().NoError(err)
	fts.Assert().Empty(records)
}

func (fts *findTestSuite) TestFind_CancelledContext() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var records []roster.Record
	err := fts.db.View(context.Background(), func(tx *roster.Tx) error {
		return tx.Find(ctx, roster.Q(), &records)
	})

	fts.Require().Error(err)
	fts.Assert().True(errors.Is(err, context.Canceled))
	fts.Assert().Empty(records)
}

func TestFindTestSuite(t *testing.T) {
	suite.Run(t, new(findTestSuite))
}
