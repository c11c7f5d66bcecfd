package domain

type InquiryStatus string

const (
	InquiryPending    InquiryStatus = "pending"
	InquiryInProgress InquiryStatus = "in-progress"
	InquiryResolved   InquiryStatus = "resolved"
)

func (s InquiryStatus) Valid() bool {
	switch s {
	case InquiryPending, InquiryInProgress, InquiryResolved:
		return true
	}
	return false
}

var inquiryEdges = map[InquiryStatus][]InquiryStatus{
	InquiryPending:    {InquiryInProgress, InquiryResolved},
	InquiryInProgress: {InquiryResolved},
}

func (s InquiryStatus) CanTransitionTo(next InquiryStatus) bool {
	for _, t := range inquiryEdges[s] {
		if t == next {
			return true
		}
	}
	return false
}

type InquiryType string

const (
	InquiryGeneral   InquiryType = "general"
	InquiryOrder     InquiryType = "order"
	InquiryProduct   InquiryType = "product"
	InquiryComplaint InquiryType = "complaint"
)

func (t InquiryType) Valid() bool {
	switch t {
	case InquiryGeneral, InquiryOrder, InquiryProduct, InquiryComplaint:
		return true
	}
	return false
}

// ContactInquiry is a support request. The response sub-record is owned
// inline; Viewed tracks whether the submitter has read the response and is
// independent of Status, so resolved-but-unread is representable.
type ContactInquiry struct {
	ID          string        `db:"id" json:"id"`
	Email       string        `db:"email" json:"email"`
	Name        string        `db:"name" json:"name"`
	Type        InquiryType   `db:"type" json:"type"`
	Message     string        `db:"message" json:"message"`
	Status      InquiryStatus `db:"status" json:"status"`
	Response    string        `db:"response" json:"response,omitempty"`
	RespondedAt string        `db:"responded_at" json:"respondedAt,omitempty"`
	Viewed      bool          `db:"viewed" json:"viewed"`
	CreatedAt   string        `db:"created_at" json:"createdAt"`
	UpdatedAt   string        `db:"updated_at" json:"updatedAt,omitempty"`
}
