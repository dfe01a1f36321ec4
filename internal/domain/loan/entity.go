package loan

import (
	"time"
)

// Status 借阅状态
// 教学要点:
// 1. 使用string类型(数据库中直接存状态名,便于排查问题)
// 2. 定义为类型别名,便于添加方法
// 3. OVERDUE是"归还时的定性结论",不是借阅中的自动状态:
//    - 借阅中即使超过应还日期,持久化状态仍是BORROWED
//    - 是否"当前逾期"由IsOverdue(now)动态计算
//    - 只有在归还动作发生时,才根据归还时间定格为RETURNED或OVERDUE
type Status string

const (
	StatusBorrowed Status = "BORROWED" // 借阅中
	StatusReturned Status = "RETURNED" // 已按时归还(终态)
	StatusOverdue  Status = "OVERDUE"  // 已逾期归还(终态)
)

// String 实现Stringer接口(方便日志输出)
func (s Status) String() string {
	return string(s)
}

// IsTerminal 是否为终态(已归还,不允许再次归还或续借)
func (s Status) IsTerminal() bool {
	return s == StatusReturned || s == StatusOverdue
}

// Loan 借阅记录实体(聚合根)
// DDD设计说明:
// 1. Loan是借阅聚合的根实体,一条记录对应一次借阅
// 2. 不直接关联User/Book对象,只保存ID(避免跨聚合引用)
// 3. ReturnDate使用指针:nil表示未归还,与Status互为校验
type Loan struct {
	ID         uint
	UserID     uint       // 借阅人ID
	BookID     uint       // 图书ID
	BorrowDate time.Time  // 借出时间
	DueDate    time.Time  // 应还时间
	ReturnDate *time.Time // 实际归还时间(nil=未归还)
	Status     Status
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// DefaultLoanPeriod 默认借期(14天)
const DefaultLoanPeriod = 14 * 24 * time.Hour

// NewLoan 创建借阅记录(工厂方法)
// 教学要点:
// 1. 工厂方法封装创建逻辑,保证实体的有效性
// 2. 初始状态固定为BORROWED,应还时间=借出时间+借期
// 3. period<=0时使用默认借期(运营可通过配置调整借期)
func NewLoan(userID, bookID uint, borrowDate time.Time, period time.Duration) *Loan {
	if period <= 0 {
		period = DefaultLoanPeriod
	}
	return &Loan{
		UserID:     userID,
		BookID:     bookID,
		BorrowDate: borrowDate,
		DueDate:    borrowDate.Add(period),
		ReturnDate: nil,
		Status:     StatusBorrowed,
		CreatedAt:  borrowDate,
		UpdatedAt:  borrowDate,
	}
}

// IsActive 是否为在借状态
func (l *Loan) IsActive() bool {
	return l.Status == StatusBorrowed
}

// IsOverdue 当前是否逾期(动态计算,不修改持久化状态)
// 业务规则:在借且应还时间已过才算逾期,已归还的记录不再参与计算
func (l *Loan) IsOverdue(now time.Time) bool {
	return l.Status == StatusBorrowed && l.DueDate.Before(now)
}

// Return 归还图书(领域行为,状态机核心)
// 业务规则:
// 1. 只有BORROWED状态可以归还,重复归还一律拒绝
// 2. 归还时间早于或等于应还时间 → RETURNED
// 3. 归还时间晚于应还时间 → OVERDUE
// 教学要点:状态一旦进入终态就不可再变,ReturnDate与终态同时落定
func (l *Loan) Return(now time.Time) error {
	if l.Status.IsTerminal() {
		return ErrAlreadyReturned
	}
	if l.Status != StatusBorrowed {
		return ErrInvalidStateTransition
	}

	returnDate := now
	l.ReturnDate = &returnDate
	if now.After(l.DueDate) {
		l.Status = StatusOverdue
	} else {
		l.Status = StatusReturned
	}
	l.UpdatedAt = now
	return nil
}

// Renew 续借(领域行为)
// 业务规则:
// 1. 只有BORROWED状态可以续借(已归还的记录不能"复活")
// 2. 新应还时间必须严格晚于当前应还时间(续借只能向后延)
// 3. 借阅中已逾期的记录依然允许续借:续借到未来日期即消除逾期
func (l *Loan) Renew(newDueDate time.Time) error {
	if l.Status.IsTerminal() {
		return ErrAlreadyReturned
	}
	if l.Status != StatusBorrowed {
		return ErrInvalidStateTransition
	}
	if !newDueDate.After(l.DueDate) {
		return ErrDueDateNotLater
	}

	l.DueDate = newDueDate
	l.UpdatedAt = time.Now()
	return nil
}

// IsOwnedBy 检查借阅记录是否属于指定用户
// 教学要点:权限校验,防止用户查看/操作他人的借阅记录
func (l *Loan) IsOwnedBy(userID uint) bool {
	return l.UserID == userID
}
