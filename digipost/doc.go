// Package digipost is a client for the Digipost document-delivery API.
//
// Requests are authenticated with an RSA-SHA256 signature made with the
// sender's certificate-bound key (see package httpsig) rather than a
// bearer token:
//
//	cred, err := credential.LoadPKCS12File("certificate.p12", password)
//	if err != nil {
//	    return err
//	}
//
//	client, err := digipost.NewClient(digipost.TestConfig(), 123456, cred)
//	if err != nil {
//	    return err
//	}
//
//	sender, err := client.SenderInformation(ctx)
//
// Failed calls return an *APIError. Its StatusCode is 0 for transport
// failures; otherwise Code, Type and Message come from the XML error
// envelope when the API sent one.
package digipost
