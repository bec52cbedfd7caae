package repository

import (
	"testing"
)

func TestBuildLikeConditionByDialect(t *testing.T) {
	condition, argCount := buildLikeConditionByDialect("sqlite", "title", " ", "sub_title")
	if argCount != 2 {
		t.Fatalf("arg count want 2 got %d", argCount)
	}
	if condition != "title LIKE ? OR sub_title LIKE ?" {
		t.Fatalf("unexpected sqlite condition: %s", condition)
	}

	condition, _ = buildLikeConditionByDialect("postgres", "title")
	if condition != "title ILIKE ?" {
		t.Fatalf("unexpected postgres condition: %s", condition)
	}
}

func TestBuildLikeConditionNilDB(t *testing.T) {
	condition, argCount := buildLikeCondition(nil, "name")
	if argCount != 1 || condition != "name LIKE ?" {
		t.Fatalf("nil db should fall back to sqlite, got %s (%d)", condition, argCount)
	}
}

func TestDayBucketExpr(t *testing.T) {
	if got := dayBucketExpr("articles.created_at"); got != "CAST(date(articles.created_at) AS TEXT)" {
		t.Fatalf("unexpected day expr: %s", got)
	}
}

func TestRepeatLikeArgs(t *testing.T) {
	args := repeatLikeArgs(likePattern(" খবর "), 3)
	if len(args) != 3 {
		t.Fatalf("args len want 3 got %d", len(args))
	}
	for idx, arg := range args {
		if arg != "%খবর%" {
			t.Fatalf("args[%d] want %%খবর%% got %v", idx, arg)
		}
	}
}
