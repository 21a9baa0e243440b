package handler

import (
	"net/url"
	"reflect"
	"testing"

	"github.com/skillswap/skillswap/internal/model"
	"github.com/skillswap/skillswap/internal/repository"
)

func TestParseSkillFilter(t *testing.T) {
	t.Parallel()

	offer := model.SkillTypeOffer
	yes := true
	owner := int64(7)

	tests := []struct {
		name    string
		query   string
		want    repository.SkillFilter
		wantErr bool
	}{
		{name: "empty", query: "", want: repository.SkillFilter{}},
		{name: "type", query: "type=OFFER", want: repository.SkillFilter{Type: &offer}},
		{name: "completed", query: "completed=true", want: repository.SkillFilter{Completed: &yes}},
		{name: "owner", query: "user_id=7", want: repository.SkillFilter{OwnerID: &owner}},
		{name: "tags", query: "tag_ids=1,%202,3", want: repository.SkillFilter{TagIDs: []int64{1, 2, 3}}},
		{name: "search trimmed", query: "search=%20guitar%20", want: repository.SkillFilter{Search: "guitar"}},
		{name: "lowercase type", query: "type=offer", wantErr: true},
		{name: "unknown type", query: "type=SWAP", wantErr: true},
		{name: "bad bool", query: "completed=yes please", wantErr: true},
		{name: "non-numeric owner", query: "user_id=abc", wantErr: true},
		{name: "negative owner", query: "user_id=-2", wantErr: true},
		{name: "bad tag list", query: "tag_ids=1,,2", wantErr: true},
		{name: "zero tag", query: "tag_ids=0", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			q, err := url.ParseQuery(tt.query)
			if err != nil {
				t.Fatalf("ParseQuery: %v", err)
			}

			got, err := parseSkillFilter(q)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("filter = %+v, want %+v", got, tt.want)
			}
		})
	}
}
