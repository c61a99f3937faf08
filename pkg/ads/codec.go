package ads

import (
	"fmt"

	"github.com/go-drift/mobileads/pkg/platform"
)

// Codec is the channel codec for the mobileads channels: the standard tagged
// binary encoding extended with the ad-domain value types below.
var Codec = platform.StandardCodec{Ext: adCodec{}}

// Extension tags for ad-domain values. These numbers are part of the wire
// contract with the native bridge and must never be reused.
const (
	tagAdSize               byte = 128
	tagAdRequest            byte = 129
	tagAdManagerAdRequest   byte = 130
	tagAdError              byte = 131
	tagLoadAdError          byte = 132
	tagResponseInfo         byte = 133
	tagRewardItem           byte = 134
	tagSSVOptions           byte = 135
	tagRequestConfiguration byte = 136
)

// adCodec encodes ad-domain values as a tag followed by the fields in
// declaration order. Optional fields are written as nil when absent so the
// decoder can reconstruct the value without length prefixes.
type adCodec struct{}

func (adCodec) EncodeExtension(w *platform.Writer, value any) (bool, error) {
	switch v := value.(type) {
	case AdSize:
		return true, encodeAdSize(w, v)
	case *AdSize:
		if v == nil {
			return true, w.WriteValue(nil)
		}
		return true, encodeAdSize(w, *v)
	case AdRequest:
		return true, encodeAdRequest(w, &v)
	case *AdRequest:
		if v == nil {
			return true, w.WriteValue(nil)
		}
		return true, encodeAdRequest(w, v)
	case AdManagerAdRequest:
		return true, encodeAdManagerAdRequest(w, &v)
	case *AdManagerAdRequest:
		if v == nil {
			return true, w.WriteValue(nil)
		}
		return true, encodeAdManagerAdRequest(w, v)
	case AdError:
		return true, encodeAdError(w, &v)
	case *AdError:
		if v == nil {
			return true, w.WriteValue(nil)
		}
		return true, encodeAdError(w, v)
	case LoadAdError:
		return true, encodeLoadAdError(w, &v)
	case *LoadAdError:
		if v == nil {
			return true, w.WriteValue(nil)
		}
		return true, encodeLoadAdError(w, v)
	case ResponseInfo:
		return true, encodeResponseInfo(w, &v)
	case *ResponseInfo:
		if v == nil {
			return true, w.WriteValue(nil)
		}
		return true, encodeResponseInfo(w, v)
	case RewardItem:
		return true, encodeRewardItem(w, v)
	case *RewardItem:
		if v == nil {
			return true, w.WriteValue(nil)
		}
		return true, encodeRewardItem(w, *v)
	case ServerSideVerificationOptions:
		return true, encodeSSVOptions(w, &v)
	case *ServerSideVerificationOptions:
		if v == nil {
			return true, w.WriteValue(nil)
		}
		return true, encodeSSVOptions(w, v)
	case RequestConfiguration:
		return true, encodeRequestConfiguration(w, &v)
	case *RequestConfiguration:
		if v == nil {
			return true, w.WriteValue(nil)
		}
		return true, encodeRequestConfiguration(w, v)
	}
	return false, nil
}

func (adCodec) DecodeExtension(tag byte, r *platform.Reader) (any, error) {
	switch tag {
	case tagAdSize:
		return decodeAdSize(r)
	case tagAdRequest:
		return decodeAdRequest(r)
	case tagAdManagerAdRequest:
		return decodeAdManagerAdRequest(r)
	case tagAdError:
		return decodeAdError(r)
	case tagLoadAdError:
		return decodeLoadAdError(r)
	case tagResponseInfo:
		return decodeResponseInfo(r)
	case tagRewardItem:
		return decodeRewardItem(r)
	case tagSSVOptions:
		return decodeSSVOptions(r)
	case tagRequestConfiguration:
		return decodeRequestConfiguration(r)
	}
	return nil, fmt.Errorf("%w: %d", platform.ErrUnknownTag, tag)
}

func encodeAdSize(w *platform.Writer, s AdSize) error {
	w.WriteTag(tagAdSize)
	if err := w.WriteValue(s.Width); err != nil {
		return err
	}
	return w.WriteValue(s.Height)
}

func decodeAdSize(r *platform.Reader) (any, error) {
	width, err := readInt(r)
	if err != nil {
		return nil, err
	}
	height, err := readInt(r)
	if err != nil {
		return nil, err
	}
	return AdSize{Width: width, Height: height}, nil
}

func encodeAdRequest(w *platform.Writer, req *AdRequest) error {
	w.WriteTag(tagAdRequest)
	return writeAdRequestFields(w, req)
}

func writeAdRequestFields(w *platform.Writer, req *AdRequest) error {
	if err := writeOptionalStrings(w, req.Keywords); err != nil {
		return err
	}
	if err := writeOptionalString(w, req.ContentURL); err != nil {
		return err
	}
	if req.NonPersonalizedAds == nil {
		return w.WriteValue(nil)
	}
	return w.WriteValue(*req.NonPersonalizedAds)
}

func decodeAdRequest(r *platform.Reader) (any, error) {
	req := &AdRequest{}
	if err := readAdRequestFields(r, req); err != nil {
		return nil, err
	}
	return req, nil
}

func readAdRequestFields(r *platform.Reader, req *AdRequest) error {
	keywords, err := r.ReadValue()
	if err != nil {
		return err
	}
	req.Keywords = stringSlice(keywords)

	contentURL, err := r.ReadValue()
	if err != nil {
		return err
	}
	req.ContentURL = platform.ParseString(contentURL)

	npa, err := r.ReadValue()
	if err != nil {
		return err
	}
	if npa != nil {
		b := platform.ParseBool(npa)
		req.NonPersonalizedAds = &b
	}
	return nil
}

func encodeAdManagerAdRequest(w *platform.Writer, req *AdManagerAdRequest) error {
	w.WriteTag(tagAdManagerAdRequest)
	if err := writeAdRequestFields(w, &req.AdRequest); err != nil {
		return err
	}
	if req.CustomTargeting == nil {
		if err := w.WriteValue(nil); err != nil {
			return err
		}
	} else if err := w.WriteValue(req.CustomTargeting); err != nil {
		return err
	}
	if req.CustomTargetingLists == nil {
		return w.WriteValue(nil)
	}
	return w.WriteValue(req.CustomTargetingLists)
}

func decodeAdManagerAdRequest(r *platform.Reader) (any, error) {
	req := &AdManagerAdRequest{}
	if err := readAdRequestFields(r, &req.AdRequest); err != nil {
		return nil, err
	}

	targeting, err := r.ReadValue()
	if err != nil {
		return nil, err
	}
	req.CustomTargeting = stringMap(targeting)

	lists, err := r.ReadValue()
	if err != nil {
		return nil, err
	}
	req.CustomTargetingLists = stringListMap(lists)
	return req, nil
}

func encodeAdError(w *platform.Writer, e *AdError) error {
	w.WriteTag(tagAdError)
	return writeAdErrorFields(w, e)
}

func writeAdErrorFields(w *platform.Writer, e *AdError) error {
	if err := w.WriteValue(e.Code); err != nil {
		return err
	}
	if err := w.WriteValue(e.Domain); err != nil {
		return err
	}
	return w.WriteValue(e.Message)
}

func decodeAdError(r *platform.Reader) (any, error) {
	e := &AdError{}
	if err := readAdErrorFields(r, e); err != nil {
		return nil, err
	}
	return e, nil
}

func readAdErrorFields(r *platform.Reader, e *AdError) error {
	code, err := readInt(r)
	if err != nil {
		return err
	}
	e.Code = code

	domain, err := r.ReadValue()
	if err != nil {
		return err
	}
	e.Domain = platform.ParseString(domain)

	message, err := r.ReadValue()
	if err != nil {
		return err
	}
	e.Message = platform.ParseString(message)
	return nil
}

func encodeLoadAdError(w *platform.Writer, e *LoadAdError) error {
	w.WriteTag(tagLoadAdError)
	if err := writeAdErrorFields(w, &e.AdError); err != nil {
		return err
	}
	return w.WriteValue(e.ResponseInfo)
}

func decodeLoadAdError(r *platform.Reader) (any, error) {
	e := &LoadAdError{}
	if err := readAdErrorFields(r, &e.AdError); err != nil {
		return nil, err
	}
	info, err := r.ReadValue()
	if err != nil {
		return nil, err
	}
	if info != nil {
		ri, ok := info.(*ResponseInfo)
		if !ok {
			return nil, fmt.Errorf("codec: load ad error carries %T, want response info", info)
		}
		e.ResponseInfo = ri
	}
	return e, nil
}

func encodeResponseInfo(w *platform.Writer, info *ResponseInfo) error {
	w.WriteTag(tagResponseInfo)
	if err := writeOptionalString(w, info.ResponseID); err != nil {
		return err
	}
	return writeOptionalString(w, info.MediationAdapterClassName)
}

func decodeResponseInfo(r *platform.Reader) (any, error) {
	responseID, err := r.ReadValue()
	if err != nil {
		return nil, err
	}
	adapter, err := r.ReadValue()
	if err != nil {
		return nil, err
	}
	return &ResponseInfo{
		ResponseID:                platform.ParseString(responseID),
		MediationAdapterClassName: platform.ParseString(adapter),
	}, nil
}

func encodeRewardItem(w *platform.Writer, item RewardItem) error {
	w.WriteTag(tagRewardItem)
	if err := w.WriteValue(item.Amount); err != nil {
		return err
	}
	return w.WriteValue(item.Type)
}

func decodeRewardItem(r *platform.Reader) (any, error) {
	amount, err := r.ReadValue()
	if err != nil {
		return nil, err
	}
	n, ok := platform.ToInt64(amount)
	if !ok {
		return nil, fmt.Errorf("codec: reward amount is %T, want integer", amount)
	}
	typ, err := r.ReadValue()
	if err != nil {
		return nil, err
	}
	return RewardItem{Amount: n, Type: platform.ParseString(typ)}, nil
}

func encodeSSVOptions(w *platform.Writer, o *ServerSideVerificationOptions) error {
	w.WriteTag(tagSSVOptions)
	if err := writeOptionalString(w, o.UserID); err != nil {
		return err
	}
	return writeOptionalString(w, o.CustomData)
}

func decodeSSVOptions(r *platform.Reader) (any, error) {
	userID, err := r.ReadValue()
	if err != nil {
		return nil, err
	}
	customData, err := r.ReadValue()
	if err != nil {
		return nil, err
	}
	return &ServerSideVerificationOptions{
		UserID:     platform.ParseString(userID),
		CustomData: platform.ParseString(customData),
	}, nil
}

func encodeRequestConfiguration(w *platform.Writer, c *RequestConfiguration) error {
	w.WriteTag(tagRequestConfiguration)
	if err := writeOptionalString(w, c.MaxAdContentRating); err != nil {
		return err
	}
	if err := writeOptionalInt(w, c.TagForChildDirectedTreatment); err != nil {
		return err
	}
	if err := writeOptionalInt(w, c.TagForUnderAgeOfConsent); err != nil {
		return err
	}
	return writeOptionalStrings(w, c.TestDeviceIDs)
}

func decodeRequestConfiguration(r *platform.Reader) (any, error) {
	c := &RequestConfiguration{}

	rating, err := r.ReadValue()
	if err != nil {
		return nil, err
	}
	c.MaxAdContentRating = platform.ParseString(rating)

	if c.TagForChildDirectedTreatment, err = readOptionalInt(r); err != nil {
		return nil, err
	}
	if c.TagForUnderAgeOfConsent, err = readOptionalInt(r); err != nil {
		return nil, err
	}

	ids, err := r.ReadValue()
	if err != nil {
		return nil, err
	}
	c.TestDeviceIDs = stringSlice(ids)
	return c, nil
}

func writeOptionalString(w *platform.Writer, s string) error {
	if s == "" {
		return w.WriteValue(nil)
	}
	return w.WriteValue(s)
}

func writeOptionalStrings(w *platform.Writer, s []string) error {
	if s == nil {
		return w.WriteValue(nil)
	}
	return w.WriteValue(s)
}

func writeOptionalInt(w *platform.Writer, n *int) error {
	if n == nil {
		return w.WriteValue(nil)
	}
	return w.WriteValue(*n)
}

func readOptionalInt(r *platform.Reader) (*int, error) {
	v, err := r.ReadValue()
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, nil
	}
	n, ok := platform.ToInt(v)
	if !ok {
		return nil, fmt.Errorf("codec: expected integer, got %T", v)
	}
	return &n, nil
}

func readInt(r *platform.Reader) (int, error) {
	v, err := r.ReadValue()
	if err != nil {
		return 0, err
	}
	n, ok := platform.ToInt(v)
	if !ok {
		return 0, fmt.Errorf("codec: expected integer, got %T", v)
	}
	return n, nil
}

func stringSlice(v any) []string {
	if v == nil {
		return nil
	}
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		out = append(out, platform.ParseString(item))
	}
	return out
}

func stringMap(v any) map[string]string {
	if v == nil {
		return nil
	}
	m := platform.ParseMap(v)
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for key, val := range m {
		out[key] = platform.ParseString(val)
	}
	return out
}

func stringListMap(v any) map[string][]string {
	if v == nil {
		return nil
	}
	m := platform.ParseMap(v)
	if m == nil {
		return nil
	}
	out := make(map[string][]string, len(m))
	for key, val := range m {
		out[key] = stringSlice(val)
	}
	return out
}
