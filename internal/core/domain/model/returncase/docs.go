// Package returncase provides the domain model for post-delivery return and
// dispute handling. It implements the ReturnRequest aggregate root with its
// review state machine and resolution rules.
//
// Key business rules:
//   - Cases move Requested -> UnderReview/Approved/Rejected -> Completed
//   - A sub-order item is covered by at most one non-terminal case at a time
//   - Resolution types are NoRefund, FullRefund, and PartialRefund; only a
//     full refund marks the underlying sub-order as refunded
//   - Refund identity and amount are settled with the refund collaborator
//     before the case records its terminal state
package returncase
