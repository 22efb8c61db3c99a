package integration_test

import (
	"net/http"
	"testing"
	"time"

	"giglink_backend/internal/app"
	"giglink_backend/internal/models"
	"giglink_backend/internal/notification"
	"giglink_backend/internal/repositories"
	"giglink_backend/internal/services"
	"giglink_backend/internal/services/dto"
	"giglink_backend/pkg/apperrors"
	"giglink_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApply_CreatesPendingApplication(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables()

	_, recruiter := helpers.CreateAndLoginRecruiter(t, ts)
	post := helpers.CreateTestPost(t, ts.DB, recruiter.ID, "Open gig", "Berlin", time.Now().AddDate(0, 0, 7))

	seekerToken, seeker := helpers.CreateAndLoginSeeker(t, ts)
	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/post/apply/"+post.ID, seekerToken, map[string]interface{}{
		"content": "I am available on weekends",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	var data struct {
		Status string `json:"status"`
		PostID string `json:"post_id"`
	}
	helpers.ParseEnvelope(t, body, &data)
	assert.Equal(t, "pending", data.Status)
	assert.Equal(t, post.ID, data.PostID)

	var stored models.Application
	require.NoError(t, ts.DB.First(&stored, "user_id = ? AND post_id = ?", seeker.ID, post.ID).Error)
	assert.Equal(t, models.ApplicationStatusPending, stored.Status)

	// The feed now flags the post as applied.
	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/post/get-all", seekerToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	var feed struct {
		Posts []struct {
			ID        string `json:"id"`
			IsApplied *bool  `json:"is_applied"`
		} `json:"posts"`
	}
	helpers.ParseEnvelope(t, body, &feed)
	require.Len(t, feed.Posts, 1)
	require.NotNil(t, feed.Posts[0].IsApplied)
	assert.True(t, *feed.Posts[0].IsApplied)
}

func TestApply_RejectionCases(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables()

	_, recruiter := helpers.CreateAndLoginRecruiter(t, ts)
	openPost := helpers.CreateTestPost(t, ts.DB, recruiter.ID, "Open", "Berlin", time.Now().AddDate(0, 0, 7))
	expiredPost := helpers.CreateTestPost(t, ts.DB, recruiter.ID, "Expired", "Berlin", time.Now().Add(-time.Hour))

	seekerToken, seeker := helpers.CreateAndLoginSeeker(t, ts)
	ownPost := helpers.CreateTestPost(t, ts.DB, seeker.ID, "My own", "Berlin", time.Now().AddDate(0, 0, 7))

	// Expired post.
	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/post/apply/"+expiredPost.ID, seekerToken, nil)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, body)
	helpers.AssertErrorCode(t, body, "VALIDATION_FAILED")

	// Own post.
	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/post/apply/"+ownPost.ID, seekerToken, nil)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, body)

	// Unknown post.
	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/post/apply/00000000-0000-0000-0000-000000000000", seekerToken, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode, body)

	// Duplicate.
	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/post/apply/"+openPost.ID, seekerToken, nil)
	require.Equal(t, http.StatusCreated, res.StatusCode, body)
	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/post/apply/"+openPost.ID, seekerToken, nil)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, body)

	var count int64
	ts.DB.Model(&models.Application{}).Where("user_id = ? AND post_id = ?", seeker.ID, openPost.ID).Count(&count)
	assert.Equal(t, int64(1), count, "exactly one application row survives")
}

func TestApplicationRepository_DuplicatePairRejected(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables()

	_, recruiter := helpers.CreateAndLoginRecruiter(t, ts)
	post := helpers.CreateTestPost(t, ts.DB, recruiter.ID, "Indexed", "Berlin", time.Now().AddDate(0, 0, 7))
	_, seeker := helpers.CreateAndLoginSeeker(t, ts)

	repo := repositories.NewApplicationRepository()
	first := &models.Application{UserID: seeker.ID, PostID: post.ID, Status: models.ApplicationStatusPending}
	require.NoError(t, repo.Create(ts.DB, first))

	second := &models.Application{UserID: seeker.ID, PostID: post.ID, Status: models.ApplicationStatusPending}
	err := repo.Create(ts.DB, second)
	require.ErrorIs(t, err, repositories.ErrDuplicateApplication)
}

func TestApply_RacingDuplicateSurfacesConflict(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables()

	_, recruiter := helpers.CreateAndLoginRecruiter(t, ts)
	post := helpers.CreateTestPost(t, ts.DB, recruiter.ID, "Contended", "Berlin", time.Now().AddDate(0, 0, 7))
	_, seeker := helpers.CreateAndLoginSeeker(t, ts)

	// An uncommitted insert is invisible to the duplicate pre-check, so the
	// racing Apply passes it and blocks on the unique index until the first
	// writer commits.
	tx := ts.DB.Begin()
	require.NoError(t, tx.Error)
	require.NoError(t, tx.Create(&models.Application{
		UserID: seeker.ID,
		PostID: post.ID,
		Status: models.ApplicationStatusPending,
	}).Error)

	svc := services.NewApplicationService(
		repositories.NewApplicationRepository(),
		repositories.NewPostRepository(),
		repositories.NewUserRepository(),
		&app.MockEmailProvider{},
		&notification.LogPusher{},
	)

	done := make(chan error, 1)
	go func() {
		_, err := svc.Apply(ts.DB, seeker.ID, post.ID, &dto.ApplyRequest{})
		done <- err
	}()

	time.Sleep(200 * time.Millisecond)
	require.NoError(t, tx.Commit().Error)

	err := <-done
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeConflict, appErr.Code)
	assert.Equal(t, http.StatusConflict, appErr.HTTPCode)

	var count int64
	ts.DB.Model(&models.Application{}).Where("user_id = ? AND post_id = ?", seeker.ID, post.ID).Count(&count)
	assert.Equal(t, int64(1), count, "the index keeps racing applies down to one row")
}

func TestUpdateApplicationStatus_OwnerOnlyAndOverwrite(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables()

	ownerToken, owner := helpers.CreateAndLoginRecruiter(t, ts)
	post := helpers.CreateTestPost(t, ts.DB, owner.ID, "Pipeline post", "Berlin", time.Now().AddDate(0, 0, 7))

	seekerToken, _ := helpers.CreateAndLoginSeeker(t, ts)
	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/post/apply/"+post.ID, seekerToken, nil)
	require.Equal(t, http.StatusCreated, res.StatusCode, body)
	var application struct {
		ID string `json:"id"`
	}
	helpers.ParseEnvelope(t, body, &application)

	strangerToken, _ := helpers.CreateAndLoginRecruiter(t, ts)
	res, body = ts.SendRequest(t, http.MethodPut, "/api/v1/post/update-status/"+application.ID, strangerToken, map[string]interface{}{
		"status": "accepted",
	})
	assert.Equal(t, http.StatusForbidden, res.StatusCode, body)

	// The owner may set any status in any order.
	for _, status := range []string{"accepted", "rejected", "accepted"} {
		res, body = ts.SendRequest(t, http.MethodPut, "/api/v1/post/update-status/"+application.ID, ownerToken, map[string]interface{}{
			"status": status,
		})
		require.Equal(t, http.StatusOK, res.StatusCode, body)

		var stored models.Application
		require.NoError(t, ts.DB.First(&stored, "id = ?", application.ID).Error)
		assert.Equal(t, models.ApplicationStatus(status), stored.Status)
	}

	res, body = ts.SendRequest(t, http.MethodPut, "/api/v1/post/update-status/"+application.ID, ownerToken, map[string]interface{}{
		"status": "bogus",
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, body)
}

func TestListApplications_OwnerWithStatusFilter(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables()

	ownerToken, owner := helpers.CreateAndLoginRecruiter(t, ts)
	post := helpers.CreateTestPost(t, ts.DB, owner.ID, "Filter post", "Berlin", time.Now().AddDate(0, 0, 7))

	firstToken, _ := helpers.CreateAndLoginSeeker(t, ts)
	secondToken, _ := helpers.CreateAndLoginSeeker(t, ts)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/post/apply/"+post.ID, firstToken, nil)
	require.Equal(t, http.StatusCreated, res.StatusCode, body)
	var first struct {
		ID string `json:"id"`
	}
	helpers.ParseEnvelope(t, body, &first)

	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/post/apply/"+post.ID, secondToken, nil)
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	res, body = ts.SendRequest(t, http.MethodPut, "/api/v1/post/update-status/"+first.ID, ownerToken, map[string]interface{}{
		"status": "accepted",
	})
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var data struct {
		Applications []struct {
			ID        string `json:"id"`
			Status    string `json:"status"`
			Applicant *struct {
				Name string `json:"name"`
			} `json:"applicant"`
		} `json:"applications"`
	}

	// Default filter is pending.
	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/post/"+post.ID+"/applications", ownerToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	helpers.ParseEnvelope(t, body, &data)
	require.Len(t, data.Applications, 1)
	assert.Equal(t, "pending", data.Applications[0].Status)
	require.NotNil(t, data.Applications[0].Applicant)

	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/post/"+post.ID+"/applications?status=accepted", ownerToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	helpers.ParseEnvelope(t, body, &data)
	require.Len(t, data.Applications, 1)
	assert.Equal(t, first.ID, data.Applications[0].ID)

	// Non-owners get a 403.
	strangerToken, _ := helpers.CreateAndLoginRecruiter(t, ts)
	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/post/"+post.ID+"/applications", strangerToken, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode, body)

	// Unknown status values are rejected before hitting the service.
	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/post/"+post.ID+"/applications?status=bogus", ownerToken, nil)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, body)
	helpers.AssertErrorCode(t, body, "INVALID_STATUS")
}

func TestAppliedPosts_EffectiveStatusClosed(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables()

	ownerToken, owner := helpers.CreateAndLoginRecruiter(t, ts)
	post := helpers.CreateTestPost(t, ts.DB, owner.ID, "Soon closed", "Berlin", time.Now().AddDate(0, 0, 7))

	seekerToken, _ := helpers.CreateAndLoginSeeker(t, ts)
	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/post/apply/"+post.ID, seekerToken, nil)
	require.Equal(t, http.StatusCreated, res.StatusCode, body)
	var application struct {
		ID string `json:"id"`
	}
	helpers.ParseEnvelope(t, body, &application)

	res, body = ts.SendRequest(t, http.MethodPut, "/api/v1/post/update-status/"+application.ID, ownerToken, map[string]interface{}{
		"status": "accepted",
	})
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var data struct {
		Applications []struct {
			Status string `json:"status"`
		} `json:"applications"`
	}

	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/post/applied/get-all", seekerToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	helpers.ParseEnvelope(t, body, &data)
	require.Len(t, data.Applications, 1)
	assert.Equal(t, "accepted", data.Applications[0].Status)

	// Once the post's end date passes, the applicant sees "closed" while the
	// stored status stays untouched.
	require.NoError(t, ts.DB.Model(&models.Post{}).Where("id = ?", post.ID).
		Update("end_date", time.Now().Add(-time.Hour)).Error)

	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/post/applied/get-all", seekerToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	helpers.ParseEnvelope(t, body, &data)
	require.Len(t, data.Applications, 1)
	assert.Equal(t, "closed", data.Applications[0].Status)

	var stored models.Application
	require.NoError(t, ts.DB.First(&stored, "id = ?", application.ID).Error)
	assert.Equal(t, models.ApplicationStatusAccepted, stored.Status)
}
