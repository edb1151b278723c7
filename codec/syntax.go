package codec

import "github.com/cocosip/go-dicom/pkg/dicom/transfer"

// Transfer Syntax UIDs written by the codecs in this module.
var (
	// UIDJPEG2000Lossless is 1.2.840.10008.1.2.4.90
	UIDJPEG2000Lossless = transfer.JPEG2000Lossless.UID().UID()
	// UIDJPEG2000 is 1.2.840.10008.1.2.4.91
	UIDJPEG2000 = transfer.JPEG2000.UID().UID()
	// UIDJPEGLSLossless is 1.2.840.10008.1.2.4.80
	UIDJPEGLSLossless = transfer.JPEGLSLossless.UID().UID()
	// UIDJPEGLSNearLossless is 1.2.840.10008.1.2.4.81
	UIDJPEGLSNearLossless = transfer.JPEGLSNearLossless.UID().UID()
	// UIDExplicitVRLittleEndian is 1.2.840.10008.1.2.1
	UIDExplicitVRLittleEndian = transfer.ExplicitVRLittleEndian.UID().UID()
)
