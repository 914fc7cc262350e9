// Package postmark implements email.EmailSender on Postmark's
// transactional API.
//
// Sign-in link delivery is the hot path here, so configuration is validated
// up front and failures come back wrapped in email.ErrFailedToSendEmail so
// callers can branch on one sentinel regardless of provider.
//
//	sender, err := postmark.New(cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	svc, err := magiclink.New(mgr, sender, linkCfg)
package postmark
