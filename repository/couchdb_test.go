package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/waxsealmail/go-waxseal-server/types"
)

var url = "http://localhost:5689"

func InitMockDatabase(dbName string) (Repository, error) {
	httpmock.Activate()

	mr, mErr := httpmock.NewJsonResponder(201, types.OK{IsOK: true})
	if mErr != nil {
		return nil, mErr
	}
	httpmock.RegisterResponder("PUT", fmt.Sprintf("%s/%s", url, dbName), mr)
	httpmock.RegisterResponder("HEAD", fmt.Sprintf("%s/%s", url, dbName), mr)

	db, err := NewCouchDBRepository(url, dbName, "test", "test", true)
	if err != nil {
		return nil, err
	}
	return db, nil
}

func deactivateMock() {
	httpmock.DeactivateAndReset()
}

func TestInitNewDatabase(t *testing.T) {
	db, err := InitMockDatabase(Campaign)
	defer deactivateMock()
	if err != nil {
		t.Fatal(err)
	}
	if db == nil {
		t.Fatal("db is nil")
	}
	assert.Equal(t, Campaign, db.GetDBName())
}

func TestSaveAndGetByID(t *testing.T) {
	db, _ := InitMockDatabase(Campaign)
	defer deactivateMock()

	mk, _ := httpmock.NewJsonResponder(201, types.OK{IsOK: true})
	httpmock.RegisterResponder("PUT", fmt.Sprintf("%s/%s/%s", url, Campaign, "abc"), mk)

	stored := types.NewCampaign()
	stored.ID = "abc"
	stored.Name = "Holiday Cards"
	mk, _ = httpmock.NewJsonResponder(200, stored)
	httpmock.RegisterResponder("GET", fmt.Sprintf("%s/%s/%s", url, Campaign, "abc"), mk)

	if err := db.Save(context.Background(), "abc", stored); err != nil {
		t.Fatal(err)
	}

	res, err := db.GetByID(context.Background(), "abc")
	if err != nil {
		t.Fatal(err)
	}
	var campaign types.Campaign
	if mErr := MapToObject(res, &campaign); mErr != nil {
		t.Fatal(mErr)
	}
	assert.Equal(t, "Holiday Cards", campaign.Name)
}

func TestGetByIDNotFound(t *testing.T) {
	db, _ := InitMockDatabase(Campaign)
	defer deactivateMock()

	mk, _ := httpmock.NewJsonResponder(404, types.CouchDBError{Error: "not_found", Reason: "missing"})
	httpmock.RegisterResponder("GET", fmt.Sprintf("%s/%s/%s", url, Campaign, "missing"), mk)

	_, err := db.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestFind(t *testing.T) {
	db, _ := InitMockDatabase(Campaign)
	defer deactivateMock()

	doc := types.NewCampaign()
	doc.ID = "abc"
	doc.SessionID = "sess-1"
	response := types.CouchDBFindResponse[types.Campaign]{Docs: []types.Campaign{*doc}}
	mk, _ := httpmock.NewJsonResponder(200, response)
	httpmock.RegisterResponder("POST", fmt.Sprintf("%s/%s/_find", url, Campaign), mk)

	query := map[string]interface{}{
		"selector": map[string]interface{}{
			"sessionId": map[string]interface{}{"$eq": "sess-1"},
		},
	}
	res, err := db.Find(context.Background(), query)
	if err != nil {
		t.Fatal(err)
	}
	var found types.CouchDBFindResponse[types.Campaign]
	if mErr := MapToObject(res, &found); mErr != nil {
		t.Fatal(mErr)
	}
	assert.Equal(t, 1, len(found.Docs))
	assert.Equal(t, "sess-1", found.Docs[0].SessionID)
}

func TestDelete(t *testing.T) {
	db, _ := InitMockDatabase(Session)
	defer deactivateMock()

	mk, _ := httpmock.NewJsonResponder(200, map[string]string{"_id": "sess-1", "_rev": "1-abc"})
	httpmock.RegisterResponder("GET", fmt.Sprintf("%s/%s/%s", url, Session, "sess-1"), mk)

	mk, _ = httpmock.NewJsonResponder(200, types.OK{IsOK: true})
	httpmock.RegisterResponder("DELETE", fmt.Sprintf("%s/%s/%s", url, Session, "sess-1"), mk)

	err := db.Delete(context.Background(), "sess-1")
	assert.NoError(t, err)
}

func TestUpdateConflict(t *testing.T) {
	db, _ := InitMockDatabase(Campaign)
	defer deactivateMock()

	mk, _ := httpmock.NewJsonResponder(409, types.CouchDBError{Error: "conflict", Reason: "Document update conflict."})
	httpmock.RegisterResponder("PUT", fmt.Sprintf("%s/%s/%s", url, Campaign, "abc"), mk)

	doc := types.NewCampaign()
	doc.ID = "abc"
	err := db.Update(context.Background(), "abc", doc)
	assert.ErrorIs(t, err, types.ErrConflict)
}
