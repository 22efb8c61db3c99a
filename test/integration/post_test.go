package integration_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"giglink_backend/internal/models"
	"giglink_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPostBody(title string) map[string]interface{} {
	now := time.Now()
	return map[string]interface{}{
		"title":      title,
		"content":    "Helping hands wanted",
		"location":   "Berlin",
		"start_date": now.Add(24 * time.Hour).Format(time.RFC3339),
		"end_date":   now.AddDate(0, 0, 14).Format(time.RFC3339),
		"tags":       []string{"weekend", "hospitality"},
	}
}

func TestCreatePost_RecruiterOnly(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables()

	seekerToken, _ := helpers.CreateAndLoginSeeker(t, ts)
	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/post", seekerToken, validPostBody("Not allowed"))
	assert.Equal(t, http.StatusForbidden, res.StatusCode, body)

	recruiterToken, recruiter := helpers.CreateAndLoginRecruiter(t, ts)
	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/post", recruiterToken, validPostBody("Warehouse help"))
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	var created struct {
		ID     string `json:"id"`
		UserID string `json:"user_id"`
	}
	helpers.ParseEnvelope(t, body, &created)
	assert.Equal(t, recruiter.ID, created.UserID)
}

func TestCreatePost_Validation(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables()

	recruiterToken, _ := helpers.CreateAndLoginRecruiter(t, ts)

	missingTitle := validPostBody("x")
	delete(missingTitle, "title")
	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/post", recruiterToken, missingTitle)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, body)

	backwards := validPostBody("Backwards dates")
	backwards["start_date"] = time.Now().AddDate(0, 0, 14).Format(time.RFC3339)
	backwards["end_date"] = time.Now().AddDate(0, 0, 7).Format(time.RFC3339)
	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/post", recruiterToken, backwards)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, body)
	helpers.AssertErrorCode(t, body, "VALIDATION_FAILED")
}

func TestGetAllPosts_ExcludesExpiredAndDeleted(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables()

	_, recruiter := helpers.CreateAndLoginRecruiter(t, ts)
	live := helpers.CreateTestPost(t, ts.DB, recruiter.ID, "Live post", "Berlin", time.Now().AddDate(0, 0, 7))
	expired := helpers.CreateTestPost(t, ts.DB, recruiter.ID, "Expired post", "Berlin", time.Now().Add(-time.Hour))
	deleted := helpers.CreateTestPost(t, ts.DB, recruiter.ID, "Deleted post", "Berlin", time.Now().AddDate(0, 0, 7))
	require.NoError(t, ts.DB.Model(&models.Post{}).Where("id = ?", deleted.ID).Update("is_active", false).Error)

	seekerToken, _ := helpers.CreateAndLoginSeeker(t, ts)
	res, body := ts.SendRequest(t, http.MethodGet, "/api/v1/post/get-all", seekerToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var data struct {
		Posts []struct {
			ID        string `json:"id"`
			IsApplied *bool  `json:"is_applied"`
			IsSaved   *bool  `json:"is_saved"`
		} `json:"posts"`
		Pagination struct {
			Total int64 `json:"total"`
		} `json:"pagination"`
	}
	helpers.ParseEnvelope(t, body, &data)

	require.Len(t, data.Posts, 1, "only the live unexpired post is listed")
	assert.Equal(t, live.ID, data.Posts[0].ID)
	assert.Equal(t, int64(1), data.Pagination.Total)
	require.NotNil(t, data.Posts[0].IsApplied)
	assert.False(t, *data.Posts[0].IsApplied)
	require.NotNil(t, data.Posts[0].IsSaved)
	assert.False(t, *data.Posts[0].IsSaved)

	_ = expired
}

func TestGetAllPosts_LocationFilterAndPagination(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables()

	_, recruiter := helpers.CreateAndLoginRecruiter(t, ts)
	for i := 0; i < 12; i++ {
		helpers.CreateTestPost(t, ts.DB, recruiter.ID, fmt.Sprintf("Berlin %d", i), "Berlin", time.Now().AddDate(0, 0, 7))
	}
	helpers.CreateTestPost(t, ts.DB, recruiter.ID, "Hamburg gig", "Hamburg", time.Now().AddDate(0, 0, 7))

	seekerToken, _ := helpers.CreateAndLoginSeeker(t, ts)

	var data struct {
		Posts []struct {
			ID string `json:"id"`
		} `json:"posts"`
		Pagination struct {
			Page  int   `json:"page"`
			Limit int   `json:"limit"`
			Total int64 `json:"total"`
		} `json:"pagination"`
	}

	// Defaults: page 1, limit 10.
	res, body := ts.SendRequest(t, http.MethodGet, "/api/v1/post/get-all?location=Berlin", seekerToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	helpers.ParseEnvelope(t, body, &data)
	assert.Len(t, data.Posts, 10)
	assert.Equal(t, int64(12), data.Pagination.Total)
	assert.Equal(t, 1, data.Pagination.Page)
	assert.Equal(t, 10, data.Pagination.Limit)

	// Out-of-range values fall back to the defaults.
	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/post/get-all?location=Berlin&page=0&limit=-5", seekerToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	helpers.ParseEnvelope(t, body, &data)
	assert.Len(t, data.Posts, 10)

	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/post/get-all?location=Berlin&page=2", seekerToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	helpers.ParseEnvelope(t, body, &data)
	assert.Len(t, data.Posts, 2)
}

func TestGetPostByID_SoftDeletedHidden(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables()

	recruiterToken, recruiter := helpers.CreateAndLoginRecruiter(t, ts)
	post := helpers.CreateTestPost(t, ts.DB, recruiter.ID, "Short lived", "Berlin", time.Now().AddDate(0, 0, 7))

	seekerToken, _ := helpers.CreateAndLoginSeeker(t, ts)
	res, body := ts.SendRequest(t, http.MethodGet, "/api/v1/post/"+post.ID, seekerToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	res, body = ts.SendRequest(t, http.MethodDelete, "/api/v1/post/delete/"+post.ID, recruiterToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/post/"+post.ID, seekerToken, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode, body)
	helpers.AssertErrorCode(t, body, "NOT_FOUND")

	// Deleting twice is also a 404.
	res, body = ts.SendRequest(t, http.MethodDelete, "/api/v1/post/delete/"+post.ID, recruiterToken, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode, body)
}

func TestGetPostByID_OwnerAccess(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables()

	recruiterToken, recruiter := helpers.CreateAndLoginRecruiter(t, ts)
	post := helpers.CreateTestPost(t, ts.DB, recruiter.ID, "Owned single", "Berlin", time.Now().AddDate(0, 0, 7))

	res, body := ts.SendRequest(t, http.MethodGet, "/api/v1/post/"+post.ID, recruiterToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	res, body = ts.SendRequest(t, http.MethodDelete, "/api/v1/post/delete/"+post.ID, recruiterToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	// The owner sees the same NotFound as everyone else.
	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/post/"+post.ID, recruiterToken, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode, body)
	helpers.AssertErrorCode(t, body, "NOT_FOUND")
}

func TestUpdateAndDeletePost_OwnerOnly(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables()

	_, owner := helpers.CreateAndLoginRecruiter(t, ts)
	post := helpers.CreateTestPost(t, ts.DB, owner.ID, "Owned post", "Berlin", time.Now().AddDate(0, 0, 7))

	strangerToken, _ := helpers.CreateAndLoginRecruiter(t, ts)

	res, body := ts.SendRequest(t, http.MethodPut, "/api/v1/post/update/"+post.ID, strangerToken, map[string]interface{}{
		"title": "Hijacked",
	})
	assert.Equal(t, http.StatusForbidden, res.StatusCode, body)

	res, body = ts.SendRequest(t, http.MethodDelete, "/api/v1/post/delete/"+post.ID, strangerToken, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode, body)
}

func TestSaveAndUnsavePost(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables()

	_, recruiter := helpers.CreateAndLoginRecruiter(t, ts)
	post := helpers.CreateTestPost(t, ts.DB, recruiter.ID, "Bookmarkable", "Berlin", time.Now().AddDate(0, 0, 7))

	seekerToken, _ := helpers.CreateAndLoginSeeker(t, ts)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/post/save/"+post.ID, seekerToken, nil)
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	// Saving twice conflicts.
	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/post/save/"+post.ID, seekerToken, nil)
	assert.Equal(t, http.StatusConflict, res.StatusCode, body)

	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/post/saved/get-all", seekerToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	var data struct {
		Posts []struct {
			ID string `json:"id"`
		} `json:"posts"`
	}
	helpers.ParseEnvelope(t, body, &data)
	require.Len(t, data.Posts, 1)
	assert.Equal(t, post.ID, data.Posts[0].ID)

	res, body = ts.SendRequest(t, http.MethodDelete, "/api/v1/post/save/"+post.ID, seekerToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/post/saved/get-all", seekerToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	helpers.ParseEnvelope(t, body, &data)
	assert.Empty(t, data.Posts)
}

func TestOwnerDashboard_FilterAndCounts(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables()

	recruiterToken, recruiter := helpers.CreateAndLoginRecruiter(t, ts)
	running := helpers.CreateTestPost(t, ts.DB, recruiter.ID, "Running", "Berlin", time.Now().AddDate(0, 0, 7))
	finished := helpers.CreateTestPost(t, ts.DB, recruiter.ID, "Finished", "Berlin", time.Now().Add(-time.Hour))

	seekerToken, _ := helpers.CreateAndLoginSeeker(t, ts)
	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/post/apply/"+running.ID, seekerToken, nil)
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	var data struct {
		Posts []struct {
			ID             string `json:"id"`
			ApplicantCount int64  `json:"applicant_count"`
		} `json:"posts"`
		StatusTally map[string]int64 `json:"status_tally"`
	}

	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/post/get-all-post?filter=ACTIVE", recruiterToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	helpers.ParseEnvelope(t, body, &data)
	require.Len(t, data.Posts, 1)
	assert.Equal(t, running.ID, data.Posts[0].ID)
	assert.Equal(t, int64(1), data.Posts[0].ApplicantCount)
	assert.Equal(t, int64(1), data.StatusTally["pending"])

	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/post/get-all-post?filter=COMPLETED", recruiterToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	helpers.ParseEnvelope(t, body, &data)
	require.Len(t, data.Posts, 1)
	assert.Equal(t, finished.ID, data.Posts[0].ID)

	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/post/get-all-post?filter=bogus", recruiterToken, nil)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, body)
}

func TestMasterCategories_Public(t *testing.T) {
	ts := GetTestServer(t)

	res, body := ts.SendRequest(t, http.MethodGet, "/api/v1/master/categories", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var data []struct {
		Name string `json:"name"`
	}
	helpers.ParseEnvelope(t, body, &data)
	assert.NotEmpty(t, data, "categories are seeded at startup")
}
