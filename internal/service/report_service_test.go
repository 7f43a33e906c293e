package service

import (
	"testing"

	"github.com/ahaven/authors-haven-api/internal/dto"
	"github.com/ahaven/authors-haven-api/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportCreate(t *testing.T) {
	db := newTestDB(t)
	svc := &ReportService{db: db, logger: testLogger()}

	author := seedUser(t, db, "author")
	reporter := seedUser(t, db, "reporter")
	article := seedArticle(t, db, author, "被举报的文章")

	report, err := svc.Create(reporter.ID, article.Slug, &dto.ReportCreateRequest{
		ReportType: model.ReportTypeSpam,
	})
	require.NoError(t, err)
	assert.Equal(t, article.ID, report.ArticleID)

	// other类型必须附带说明
	_, err = svc.Create(reporter.ID, article.Slug, &dto.ReportCreateRequest{
		ReportType: model.ReportTypeOther,
	})
	assert.ErrorIs(t, err, ErrInvalidParam)

	_, err = svc.Create(reporter.ID, article.Slug, &dto.ReportCreateRequest{
		ReportType: model.ReportTypeOther,
		Context:    "文章与标题完全无关",
	})
	assert.NoError(t, err)

	_, err = svc.Create(reporter.ID, "no-such-slug", &dto.ReportCreateRequest{
		ReportType: model.ReportTypeSpam,
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReportListByArticle(t *testing.T) {
	db := newTestDB(t)
	svc := &ReportService{db: db, logger: testLogger()}

	author := seedUser(t, db, "author")
	reporter := seedUser(t, db, "reporter")
	article := seedArticle(t, db, author, "多次举报的文章")

	_, err := svc.Create(reporter.ID, article.Slug, &dto.ReportCreateRequest{ReportType: model.ReportTypeSpam})
	require.NoError(t, err)
	_, err = svc.Create(reporter.ID, article.Slug, &dto.ReportCreateRequest{ReportType: model.ReportTypeHarassment})
	require.NoError(t, err)

	reports, err := svc.ListByArticle(article.Slug)
	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Equal(t, "reporter", reports[0].User.Username)

	_, err = svc.ListByArticle("no-such-slug")
	assert.ErrorIs(t, err, ErrNotFound)
}
