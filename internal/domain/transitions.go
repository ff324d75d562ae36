// Status transition tables for every stateful entity.
//
// Job posts:
//
//	draft ──► open ──► assigned ──► in_progress ──► completed
//	            │          │             │
//	            └──────────┴─────────────┴──► cancelled
//
// Assignments:
//
//	assigned ──► checked_in ──► in_progress ──► submitted ──► approved
//	    │             │             ▲   │           │
//	    │             │             └───┼───────────┴──► rework
//	    └─────────────┴─────────────────┴──► cancelled
//
// Offers: sent ──► accepted | declined, only before the deadline; an
// expired offer is a read-time derivation, not an edge.
//
// Invoices: draft ──► issued ──► paid; draft | issued ──► void; overdue is
// a read-time derivation like offer expiry.
//
// completed, cancelled, approved, paid and void are terminal.
package domain

import "time"

var jobTransitions = map[JobStatus][]JobStatus{
	JobDraft:      {JobOpen},
	JobOpen:       {JobAssigned, JobCancelled},
	JobAssigned:   {JobInProgress, JobCancelled},
	JobInProgress: {JobCompleted, JobCancelled},
}

var assignmentTransitions = map[AssignmentStatus][]AssignmentStatus{
	AssignmentAssigned:   {AssignmentCheckedIn, AssignmentCancelled},
	AssignmentCheckedIn:  {AssignmentInProgress, AssignmentCancelled},
	AssignmentInProgress: {AssignmentSubmitted, AssignmentCancelled},
	AssignmentSubmitted:  {AssignmentApproved, AssignmentRework},
	AssignmentRework:     {AssignmentInProgress},
}

var invoiceTransitions = map[InvoiceStatus][]InvoiceStatus{
	InvoiceDraft:  {InvoiceIssued, InvoiceVoid},
	InvoiceIssued: {InvoicePaid, InvoiceVoid},
}

var offerTransitions = map[OfferStatus][]OfferStatus{
	OfferSent: {OfferAccepted, OfferDeclined},
}

func edgeAllowed[S comparable](table map[S][]S, from, to S) bool {
	for _, s := range table[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Transition returns a copy of the job moved to target, stamping the
// timestamps that edge implies, or a *TransitionError when the edge is not
// in the table. The receiver is never mutated.
func (j JobPost) Transition(target JobStatus, now time.Time) (JobPost, error) {
	if !edgeAllowed(jobTransitions, j.Status, target) {
		return j, &TransitionError{Entity: "job_post", From: string(j.Status), To: string(target)}
	}
	j.Status = target
	j.UpdatedAt = now
	switch target {
	case JobCancelled:
		j.CancelledAt = &now
	case JobCompleted:
		j.CompletedAt = &now
	}
	return j, nil
}

// Transition moves the assignment along one edge of its lifecycle.
// Entering rework increments ReworkCount; the cycle count is deliberately
// unbounded.
func (a Assignment) Transition(target AssignmentStatus, now time.Time) (Assignment, error) {
	if !edgeAllowed(assignmentTransitions, a.Status, target) {
		return a, &TransitionError{Entity: "assignment", From: string(a.Status), To: string(target)}
	}
	a.Status = target
	a.UpdatedAt = now
	switch target {
	case AssignmentCheckedIn:
		a.CheckedInAt = &now
	case AssignmentInProgress:
		if a.StartedAt == nil {
			a.StartedAt = &now
		}
	case AssignmentSubmitted:
		a.SubmittedAt = &now
		a.Progress = 100
	case AssignmentApproved:
		a.ApprovedAt = &now
	case AssignmentRework:
		a.ReworkRequestedAt = &now
		a.ReworkCount++
	case AssignmentCancelled:
		a.CancelledAt = &now
	}
	return a, nil
}

// Transition answers a sent offer. Acceptance and decline are only valid
// while the offer is still effectively sent; past the deadline the stored
// status no longer matters and the edge is reported from "expired".
func (o Offer) Transition(target OfferStatus, now time.Time) (Offer, error) {
	effective := o.EffectiveStatus(now)
	if effective == OfferExpired || !edgeAllowed(offerTransitions, effective, target) {
		return o, &TransitionError{Entity: "offer", From: string(effective), To: string(target)}
	}
	o.Status = target
	o.RespondedAt = &now
	return o, nil
}

// Transition moves the invoice along its billing lifecycle.
func (inv Invoice) Transition(target InvoiceStatus, now time.Time) (Invoice, error) {
	if !edgeAllowed(invoiceTransitions, inv.Status, target) {
		return inv, &TransitionError{Entity: "invoice", From: string(inv.Status), To: string(target)}
	}
	inv.Status = target
	inv.UpdatedAt = now
	switch target {
	case InvoiceIssued:
		inv.IssuedAt = &now
	case InvoicePaid:
		inv.PaidAt = &now
	case InvoiceVoid:
		inv.VoidedAt = &now
	}
	return inv, nil
}
