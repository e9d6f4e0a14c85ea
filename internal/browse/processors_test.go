package browse

import (
	"context"
	"errors"
	"testing"

	"github.com/LISSConsulting/LISSTech.Flux/internal/cob"
	"github.com/LISSConsulting/LISSTech.Flux/internal/git"
	"github.com/LISSConsulting/LISSTech.Flux/internal/state"
)

func TestDetailsProcessor(t *testing.T) {
	ctx := context.Background()
	commits := []git.Commit{{Hash: "1234567", Author: "ana", Subject: "Fix crash"}}

	tests := []struct {
		name    string
		proc    *DetailsProcessor
		msg     Message
		want    *DetailsLoaded
		wantErr error
	}{
		{
			name: "issue body",
			proc: &DetailsProcessor{Kind: KindIssues, Repo: testRepo()},
			msg:  Select{ID: "aaaaaaaaaa"},
			want: &DetailsLoaded{ID: "aaaaaaaaaa", Body: "it crashes"},
		},
		{
			name: "patch history",
			proc: &DetailsProcessor{Kind: KindPatches, Repo: testRepo(), History: &fakeHistory{commits: commits, stat: " 1 file changed"}},
			msg:  Select{ID: "pppppppppp"},
			want: &DetailsLoaded{ID: "pppppppppp", Commits: commits, Stat: " 1 file changed"},
		},
		{
			name: "git failure is shown",
			proc: &DetailsProcessor{Kind: KindPatches, Repo: testRepo(), History: &fakeHistory{err: errors.New("bad revision")}},
			msg:  Select{ID: "pppppppppp"},
			want: &DetailsLoaded{ID: "pppppppppp", Err: "bad revision"},
		},
		{
			name: "notification resolves its object",
			proc: &DetailsProcessor{Kind: KindInbox, Repo: testRepo()},
			msg:  Select{ID: "n1"},
			want: &DetailsLoaded{ID: "n1", Body: "it crashes"},
		},
		{
			name:    "unknown object",
			proc:    &DetailsProcessor{Kind: KindIssues, Repo: testRepo()},
			msg:     Select{ID: "zzz"},
			wantErr: cob.ErrNotFound,
		},
		{
			name: "other messages are ignored",
			proc: &DetailsProcessor{Kind: KindIssues, Repo: testRepo()},
			msg:  ToggleHelp{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := tt.proc.Process(ctx, tt.msg)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Process: %v", err)
			}
			if tt.want == nil {
				if len(out) != 0 {
					t.Fatalf("expected no output, got %v", out)
				}
				return
			}
			if len(out) != 1 {
				t.Fatalf("expected one message, got %v", out)
			}
			got, ok := out[0].(DetailsLoaded)
			if !ok {
				t.Fatalf("got %T", out[0])
			}
			if got.ID != tt.want.ID || got.Body != tt.want.Body || got.Stat != tt.want.Stat ||
				got.Err != tt.want.Err || len(got.Commits) != len(tt.want.Commits) {
				t.Errorf("got %+v, want %+v", got, *tt.want)
			}
		})
	}
}

func TestPersistProcessor(t *testing.T) {
	fs, err := state.NewFileStore(t.TempDir(), state.Identifier("issue", "select", "/repo"))
	if err != nil {
		t.Fatal(err)
	}
	p := &PersistProcessor{Store: fs}

	if _, err := state.Load[Saved](fs); !errors.Is(err, state.ErrNoState) {
		t.Fatalf("expected ErrNoState before any select, got %v", err)
	}
	if out, err := p.Process(context.Background(), Select{ID: "bbbbbbbbbb"}); err != nil || out != nil {
		t.Fatalf("Process = %v, %v", out, err)
	}
	saved, err := state.Load[Saved](fs)
	if err != nil {
		t.Fatal(err)
	}
	if saved.Selected != "bbbbbbbbbb" {
		t.Errorf("saved = %+v", saved)
	}

	if _, err := p.Process(context.Background(), Quit{}); err != nil {
		t.Fatal(err)
	}
	if again, _ := state.Load[Saved](fs); again.Selected != "bbbbbbbbbb" {
		t.Errorf("non-select message changed saved state: %+v", again)
	}
}
