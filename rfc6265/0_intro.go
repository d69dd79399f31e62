package rfc6265

// §  Internet Engineering Task Force (IETF)                          A. Barth
// §  Request for Comments: 6265                                 U.C. Berkeley
// §  Obsoletes: 2965                                               April 2011
// §  Category: Standards Track
// §  ISSN: 2070-1721
// §
// §                       HTTP State Management Mechanism
// §
// §  Abstract
// §
// §     This document defines the HTTP Cookie and Set-Cookie header fields.
// §     These header fields can be used by HTTP servers to store state
// §     (called cookies) at HTTP user agents, letting the servers maintain a
// §     stateful session over the mostly stateless HTTP protocol.  Although
// §     cookies have many historical infelicities that degrade their security
// §     and privacy, the Cookie and Set-Cookie header fields are widely used
// §     on the Internet.  This document obsoletes RFC 2965.
// §
// §  Status of This Memo
// §
// §     This is an Internet Standards Track document.
// §
// §     This document is a product of the Internet Engineering Task Force
// §     (IETF).  It represents the consensus of the IETF community.  It has
// §     received public review and has been approved for publication by the
// §     Internet Engineering Steering Group (IESG).  Further information on
// §     Internet Standards is available in Section 2 of RFC 5741.
// §
// §     Information about the current status of this document, any errata,
// §     and how to provide feedback on it may be obtained at
// §     http://www.rfc-editor.org/info/rfc6265.
//
// This package implements the parts of the user agent requirements needed for
// handling cookie expiry times: the cookie-date parsing algorithm of section
// 5.1.1 and the Set-Cookie header field splitting of section 5.2.
//
// Note that servers in the wild routinely send Expires values that do not
// conform to any of the HTTP date formats. The section 5.1.1 algorithm is
// deliberately lenient so that such values still parse; this package
// preserves that leniency exactly.
