package settlement

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		balance    int64
		wantStatus Status
		wantAmount int64
	}{
		{0, StatusSettled, 0},
		{20, StatusOwed, 20},
		{-20, StatusOwing, 20},
	}

	for _, tt := range tests {
		got := Classify(decimal.NewFromInt(tt.balance))
		if got.Status != tt.wantStatus {
			t.Fatalf("Classify(%d).Status = %s, want %s", tt.balance, got.Status, tt.wantStatus)
		}
		if !got.Amount.Equal(decimal.NewFromInt(tt.wantAmount)) {
			t.Fatalf("Classify(%d).Amount = %s, want %d", tt.balance, got.Amount, tt.wantAmount)
		}
	}
}

func TestClassify_DivisionLeftoversAreSettled(t *testing.T) {
	tests := []struct {
		balance    string
		wantStatus Status
	}{
		{"0.0000000000000001", StatusSettled},
		{"-0.0049", StatusSettled},
		{"0.005", StatusOwed},
		{"-0.005", StatusOwing},
	}

	for _, tt := range tests {
		got := Classify(decimal.RequireFromString(tt.balance))
		if got.Status != tt.wantStatus {
			t.Fatalf("Classify(%s).Status = %s, want %s", tt.balance, got.Status, tt.wantStatus)
		}
		if got.Status == StatusSettled && !got.Amount.IsZero() {
			t.Fatalf("Classify(%s).Amount = %s, want 0", tt.balance, got.Amount)
		}
	}
}

func TestRankLeaderboard(t *testing.T) {
	sheet := BalanceSheet{
		{Member: "A", Balance: decimal.NewFromInt(20)},
		{Member: "B", Balance: decimal.NewFromInt(-20)},
		{Member: "C", Balance: decimal.Zero},
	}

	board := RankLeaderboard(sheet)

	want := []struct {
		member  string
		balance int64
	}{{"A", 20}, {"C", 0}, {"B", -20}}

	if len(board) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(board))
	}
	for i, w := range want {
		if board[i].Member != w.member || !board[i].Balance.Equal(decimal.NewFromInt(w.balance)) {
			t.Fatalf("entry %d = %+v, want %s %d", i, board[i], w.member, w.balance)
		}
		if board[i].Rank != i+1 {
			t.Fatalf("entry %d rank = %d", i, board[i].Rank)
		}
	}

	if sheet[1].Member != "B" {
		t.Fatalf("RankLeaderboard must not reorder its input")
	}
}

func TestRankLeaderboard_TiesKeepRosterOrder(t *testing.T) {
	sheet := BalanceSheet{
		{Member: "X", Balance: decimal.Zero},
		{Member: "Y", Balance: decimal.NewFromInt(5)},
		{Member: "Z", Balance: decimal.Zero},
		{Member: "W", Balance: decimal.Zero},
	}

	board := RankLeaderboard(sheet)
	got := []string{board[0].Member, board[1].Member, board[2].Member, board[3].Member}
	want := []string{"Y", "X", "Z", "W"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got order %v, want %v", got, want)
		}
	}
}

func TestPartitionSheet(t *testing.T) {
	sheet := BalanceSheet{
		{Member: "A", Balance: decimal.NewFromInt(20)},
		{Member: "B", Balance: decimal.NewFromInt(-20)},
		{Member: "C", Balance: decimal.Zero},
	}

	p := PartitionSheet(sheet)
	if len(p.Owed) != 1 || p.Owed[0].Member != "A" {
		t.Fatalf("unexpected owed partition: %+v", p.Owed)
	}
	if len(p.Owing) != 1 || p.Owing[0].Member != "B" {
		t.Fatalf("unexpected owing partition: %+v", p.Owing)
	}
	if len(p.Settled) != 1 || p.Settled[0].Member != "C" {
		t.Fatalf("unexpected settled partition: %+v", p.Settled)
	}
}
