package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gosplit/internal/domain"
	"github.com/iho/gosplit/internal/settlement"
	"github.com/iho/gosplit/internal/usecase"
)

// money renders an amount for display with two decimals.
func money(d decimal.Decimal) string {
	return domain.QuantizeAmount(d).StringFixed(domain.AmountScale)
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// SessionResponse carries a new session and its bearer token.
type SessionResponse struct {
	SessionID string    `json:"session_id"`
	Token     string    `json:"token"`
	TokenType string    `json:"token_type"`
	CreatedAt time.Time `json:"created_at"`
}

// SessionFromUseCase converts a started session to response.
func SessionFromUseCase(s *usecase.Session, token string) *SessionResponse {
	return &SessionResponse{
		SessionID: s.ID,
		Token:     token,
		TokenType: "Bearer",
		CreatedAt: s.CreatedAt,
	}
}

// GroupResponse represents a group in API responses.
type GroupResponse struct {
	Name         string          `json:"name"`
	Members      []string        `json:"members"`
	PaidStatus   map[string]bool `json:"paid_status"`
	ExpenseCount int             `json:"expense_count"`
	CreatedAt    time.Time       `json:"created_at"`
}

// GroupFromDomain converts domain group to response.
func GroupFromDomain(g *domain.Group) *GroupResponse {
	paid := make(map[string]bool, len(g.Members))
	for _, m := range g.Members {
		paid[m] = g.IsPaid(m)
	}

	return &GroupResponse{
		Name:         g.Name,
		Members:      g.Members,
		PaidStatus:   paid,
		ExpenseCount: len(g.Expenses),
		CreatedAt:    g.CreatedAt,
	}
}

// GroupSummaryResponse is a group in listings.
type GroupSummaryResponse struct {
	Name         string    `json:"name"`
	MemberCount  int       `json:"member_count"`
	ExpenseCount int       `json:"expense_count"`
	CreatedAt    time.Time `json:"created_at"`
}

// ListGroupsResponse represents a list of groups.
type ListGroupsResponse struct {
	Groups []GroupSummaryResponse `json:"groups"`
	Total  int                    `json:"total"`
}

// GroupsFromDomain converts group summaries to a list response.
func GroupsFromDomain(summaries []domain.GroupSummary) *ListGroupsResponse {
	groups := make([]GroupSummaryResponse, len(summaries))
	for i, s := range summaries {
		groups[i] = GroupSummaryResponse{
			Name:         s.Name,
			MemberCount:  s.MemberCount,
			ExpenseCount: s.ExpenseCount,
			CreatedAt:    s.CreatedAt,
		}
	}

	return &ListGroupsResponse{Groups: groups, Total: len(groups)}
}

// ExpenseResponse represents an expense in API responses.
type ExpenseResponse struct {
	ID           string    `json:"id"`
	Index        int       `json:"index,omitempty"`
	Description  string    `json:"description"`
	Amount       string    `json:"amount"`
	Payer        string    `json:"payer"`
	Participants []string  `json:"participants"`
	Share        string    `json:"share"`
	CreatedAt    time.Time `json:"created_at"`
}

// ExpenseFromDomain converts a domain expense to response. index is its
// 1-based position in the group, or 0 when unknown.
func ExpenseFromDomain(e domain.Expense, index int) *ExpenseResponse {
	share := e.Amount().Div(decimal.NewFromInt(int64(e.ParticipantCount())))

	return &ExpenseResponse{
		ID:           e.ID(),
		Index:        index,
		Description:  e.Description(),
		Amount:       money(e.Amount()),
		Payer:        e.Payer(),
		Participants: e.Participants(),
		Share:        money(share),
		CreatedAt:    e.CreatedAt(),
	}
}

// ListExpensesResponse represents a list of expenses.
type ListExpensesResponse struct {
	Group    string             `json:"group"`
	Expenses []*ExpenseResponse `json:"expenses"`
	Total    int                `json:"total"`
}

// ExpensesFromDomain converts domain expenses to a list response.
func ExpensesFromDomain(group string, expenses []domain.Expense) *ListExpensesResponse {
	result := make([]*ExpenseResponse, len(expenses))
	for i, e := range expenses {
		result[i] = ExpenseFromDomain(e, i+1)
	}

	return &ListExpensesResponse{Group: group, Expenses: result, Total: len(result)}
}

// PaidStatusResponse echoes a member's paid flag.
type PaidStatusResponse struct {
	Group  string `json:"group"`
	Member string `json:"member"`
	Paid   bool   `json:"paid"`
}

// BalanceResponse is one member's balance.
type BalanceResponse struct {
	Member  string `json:"member"`
	Balance string `json:"balance"`
	Status  string `json:"status"`
	Amount  string `json:"amount"`
	Paid    bool   `json:"paid"`
}

// BalancesResponse is a group's balance sheet with its partition.
type BalancesResponse struct {
	Group    string            `json:"group"`
	Balances []BalanceResponse `json:"balances"`
	Owing    []string          `json:"owing"`
	Owed     []string          `json:"owed"`
	Settled  []string          `json:"settled"`
}

// BalancesFromUseCase converts a balance report to response.
func BalancesFromUseCase(report *usecase.BalanceReport) *BalancesResponse {
	rows := make([]BalanceResponse, len(report.Rows))
	for i, row := range report.Rows {
		rows[i] = BalanceResponse{
			Member:  row.Member,
			Balance: money(row.Balance),
			Status:  string(row.Standing.Status),
			Amount:  money(row.Standing.Amount),
			Paid:    row.Paid,
		}
	}

	return &BalancesResponse{
		Group:    report.Group,
		Balances: rows,
		Owing:    memberNames(report.Partition.Owing),
		Owed:     memberNames(report.Partition.Owed),
		Settled:  memberNames(report.Partition.Settled),
	}
}

func memberNames(rows []settlement.MemberBalance) []string {
	names := make([]string, len(rows))
	for i, row := range rows {
		names[i] = row.Member
	}
	return names
}

// LeaderboardEntryResponse is one ranked member.
type LeaderboardEntryResponse struct {
	Rank    int    `json:"rank"`
	Member  string `json:"member"`
	Balance string `json:"balance"`
}

// LeaderboardResponse is the ranked balance list of a group.
type LeaderboardResponse struct {
	Group   string                     `json:"group"`
	Entries []LeaderboardEntryResponse `json:"entries"`
}

// LeaderboardFromSettlement converts ranked entries to response.
func LeaderboardFromSettlement(group string, board []settlement.LeaderboardEntry) *LeaderboardResponse {
	entries := make([]LeaderboardEntryResponse, len(board))
	for i, e := range board {
		entries[i] = LeaderboardEntryResponse{Rank: e.Rank, Member: e.Member, Balance: money(e.Balance)}
	}

	return &LeaderboardResponse{Group: group, Entries: entries}
}

// PayeeResponse is a member who can receive a payment.
type PayeeResponse struct {
	Member  string `json:"member"`
	Balance string `json:"balance"`
}

// PayeesResponse lists eligible payees of a group.
type PayeesResponse struct {
	Group  string          `json:"group"`
	Payees []PayeeResponse `json:"payees"`
}

// PayeesFromSettlement converts eligible payees to response.
func PayeesFromSettlement(group string, payees []settlement.MemberBalance) *PayeesResponse {
	result := make([]PayeeResponse, len(payees))
	for i, p := range payees {
		result[i] = PayeeResponse{Member: p.Member, Balance: money(p.Balance)}
	}

	return &PayeesResponse{Group: group, Payees: result}
}

// TransferResponse is one suggested settlement payment.
type TransferResponse struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Amount string `json:"amount"`
}

// TransfersResponse lists suggested settlement payments.
type TransfersResponse struct {
	Group     string             `json:"group"`
	Transfers []TransferResponse `json:"transfers"`
}

// TransfersFromSettlement converts suggested transfers to response.
func TransfersFromSettlement(group string, transfers []settlement.Transfer) *TransfersResponse {
	result := make([]TransferResponse, len(transfers))
	for i, t := range transfers {
		result[i] = TransferResponse{From: t.From, To: t.To, Amount: money(t.Amount)}
	}

	return &TransfersResponse{Group: group, Transfers: result}
}

// ConsistencyResponse reports whether a group's balances are conserved.
type ConsistencyResponse struct {
	Group      string   `json:"group"`
	RawSum     string   `json:"raw_sum"`
	FinalSum   string   `json:"final_sum"`
	Conserved  bool     `json:"conserved"`
	Discarded  string   `json:"discarded"`
	Overridden []string `json:"overridden"`
}

// ConsistencyFromUseCase converts a consistency report to response.
func ConsistencyFromUseCase(r *usecase.ConsistencyReport) *ConsistencyResponse {
	overridden := r.Overridden
	if overridden == nil {
		overridden = []string{}
	}

	return &ConsistencyResponse{
		Group:      r.Group,
		RawSum:     money(r.RawSum),
		FinalSum:   money(r.FinalSum),
		Conserved:  r.Conserved,
		Discarded:  money(r.Discarded),
		Overridden: overridden,
	}
}

// SummaryResponse carries a generated summary.
type SummaryResponse struct {
	Group   string `json:"group"`
	Summary string `json:"summary"`
	Cached  bool   `json:"cached"`
}

// SummaryFromUseCase converts a summary to response.
func SummaryFromUseCase(s *usecase.Summary) *SummaryResponse {
	return &SummaryResponse{Group: s.Group, Summary: s.Text, Cached: s.Cached}
}

// PaymentOrderResponse represents an opened payment order.
type PaymentOrderResponse struct {
	OrderID     string `json:"order_id"`
	Group       string `json:"group"`
	Payee       string `json:"payee"`
	Amount      string `json:"amount"`
	AmountMinor int64  `json:"amount_minor"`
	Currency    string `json:"currency"`
	Receipt     string `json:"receipt"`
}

// PaymentOrderFromUseCase converts an order result to response.
func PaymentOrderFromUseCase(r *usecase.PaymentOrderResult) *PaymentOrderResponse {
	return &PaymentOrderResponse{
		OrderID:     r.OrderID,
		Group:       r.Group,
		Payee:       r.Payee,
		Amount:      money(r.Amount),
		AmountMinor: r.AmountMinor,
		Currency:    r.Currency,
		Receipt:     r.Receipt,
	}
}

// PersonalExpenseResponse represents a personal expense.
type PersonalExpenseResponse struct {
	ID     string `json:"id"`
	Date   string `json:"date"`
	Item   string `json:"item"`
	Amount string `json:"amount"`
}

// PersonalExpenseFromDomain converts a personal expense to response.
func PersonalExpenseFromDomain(e domain.PersonalExpense) *PersonalExpenseResponse {
	return &PersonalExpenseResponse{
		ID:     e.ID,
		Date:   e.Date.Format(domain.DateLayout),
		Item:   e.Item,
		Amount: money(e.Amount),
	}
}

// MonthResponse is one month of the personal log.
type MonthResponse struct {
	Year     int                        `json:"year"`
	Month    int                        `json:"month"`
	Expenses []*PersonalExpenseResponse `json:"expenses"`
	Total    string                     `json:"total"`
	Days     []int                      `json:"days"`
}

// MonthFromUseCase converts a month summary to response.
func MonthFromUseCase(s *usecase.MonthSummary) *MonthResponse {
	expenses := make([]*PersonalExpenseResponse, len(s.Expenses))
	for i, e := range s.Expenses {
		expenses[i] = PersonalExpenseFromDomain(e)
	}

	days := s.Days
	if days == nil {
		days = []int{}
	}

	return &MonthResponse{
		Year:     s.Year,
		Month:    int(s.Month),
		Expenses: expenses,
		Total:    money(s.Total),
		Days:     days,
	}
}
